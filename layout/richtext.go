package layout

import "strings"

// emphasisMarker toggles bold. A run of text between two markers is drawn
// bold; an unmatched trailing marker is treated as literal text.
const emphasisMarker = "**"

// styledRune is one rune of rich text with its resolved emphasis state.
type styledRune struct {
	r    rune
	bold bool
}

// parseEmphasis converts marker-delimited text into styled runes. Line
// breaks in the input are preserved as '\n' runes.
func parseEmphasis(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	bold := false
	for len(s) > 0 {
		i := strings.Index(s, emphasisMarker)
		if i < 0 {
			break
		}
		rest := s[i+len(emphasisMarker):]
		if !bold && !strings.Contains(rest, emphasisMarker) {
			// Unmatched opener: keep it literal.
			break
		}
		for _, r := range s[:i] {
			out = append(out, styledRune{r: r, bold: bold})
		}
		bold = !bold
		s = rest
	}
	for _, r := range s {
		out = append(out, styledRune{r: r, bold: bold})
	}
	return out
}

// plainString is the plain-text projection of styled runes. Wrapping is
// computed on this projection; emphasis only changes the drawn glyphs.
func plainString(rs []styledRune) string {
	var b strings.Builder
	b.Grow(len(rs))
	for _, sr := range rs {
		b.WriteRune(sr.r)
	}
	return b.String()
}

// wrapStyled wraps styled runes into lines no wider than width, measured
// with the regular style of f. Bold runs are reapplied per line at draw
// time; measuring on the plain projection is a deliberate simplification
// that can misjudge wrap points for heavily emphasized text.
func (c *Context) wrapStyled(f FontSpec, rs []styledRune, width float64) [][]styledRune {
	f.Style = strings.ReplaceAll(f.Style, "B", "")
	c.SetFont(f)

	var lines [][]styledRune
	var line []styledRune

	flush := func() {
		lines = append(lines, line)
		line = nil
	}

	for _, word := range splitWords(rs) {
		if len(word) == 1 && word[0].r == '\n' {
			flush()
			continue
		}
		var cand []styledRune
		if len(line) > 0 {
			cand = append(append(append(cand, line...), styledRune{r: ' '}), word...)
		} else {
			cand = word
		}
		if c.pdf.GetStringWidth(plainString(cand)) <= width || len(line) == 0 {
			line = cand
			// A single word wider than the line is hard-broken so the
			// content rectangle is never exceeded horizontally.
			for len(line) > 1 && c.pdf.GetStringWidth(plainString(line)) > width {
				cut := len(line) - 1
				for cut > 1 && c.pdf.GetStringWidth(plainString(line[:cut])) > width {
					cut--
				}
				lines = append(lines, line[:cut])
				line = line[cut:]
			}
			continue
		}
		flush()
		line = word
	}
	if len(line) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// splitWords tokenizes styled runes on spaces. Newlines are emitted as
// single-rune words so wrapStyled can honor explicit breaks.
func splitWords(rs []styledRune) [][]styledRune {
	var words [][]styledRune
	var word []styledRune
	for _, sr := range rs {
		switch sr.r {
		case ' ', '\t':
			if len(word) > 0 {
				words = append(words, word)
				word = nil
			}
		case '\n':
			if len(word) > 0 {
				words = append(words, word)
				word = nil
			}
			words = append(words, []styledRune{{r: '\n'}})
		default:
			word = append(word, sr)
		}
	}
	if len(word) > 0 {
		words = append(words, word)
	}
	return words
}

// drawStyledLine draws one wrapped line at (x, y), toggling the bold face
// per emphasis run. y is the top of the line box.
func (c *Context) drawStyledLine(f FontSpec, line []styledRune, x, y float64) {
	baseline := y + c.LineHeight(f)*0.78
	regular := strings.ReplaceAll(f.Style, "B", "")
	for i := 0; i < len(line); {
		j := i
		for j < len(line) && line[j].bold == line[i].bold {
			j++
		}
		seg := plainString(line[i:j])
		style := regular
		if line[i].bold {
			style += "B"
		}
		c.SetFont(FontSpec{Family: f.Family, Style: style, Size: f.Size})
		c.pdf.Text(x, baseline, seg)
		x += c.pdf.GetStringWidth(seg)
		i = j
	}
}

// measureStyled returns the height of styled text wrapped to width.
func (c *Context) measureStyled(f FontSpec, rs []styledRune, width float64) float64 {
	if len(rs) == 0 {
		return 0
	}
	return float64(len(c.wrapStyled(f, rs, width))) * c.LineHeight(f)
}
