package chartimg

import (
	"bytes"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// maxRasterWidth caps embedded raster width. Wider captures are downscaled
// before embedding so documents stay small; the placed size is unaffected
// because the layout engine scales by aspect ratio.
const maxRasterWidth = 1600

// downscale re-encodes assets wider than maxW at a reduced resolution,
// preserving the aspect ratio. Assets at or below the cap pass through.
func downscale(asset *RasterAsset, maxW int) (*RasterAsset, error) {
	if asset.Width <= maxW {
		return asset, nil
	}

	src, err := png.Decode(bytes.NewReader(asset.PNG))
	if err != nil {
		return nil, err
	}
	newW := maxW
	newH := asset.Height * maxW / asset.Width
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return &RasterAsset{PNG: buf.Bytes(), Width: newW, Height: newH}, nil
}
