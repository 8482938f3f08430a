package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"palette-grab/internal/colorkit"
	"palette-grab/internal/config"
	"palette-grab/internal/model"
)

var (
	ErrPointOutOfBounds = errors.New("sample point outside frame")
	ErrUndecodableFrame = errors.New("undecodable frame")
)

// SampleRequest selects the point to read. A nil X or Y means the frame
// center; Radius > 0 averages the (2r+1)² box around the point, clipped to
// the frame, and a negative Radius uses the configured default.
type SampleRequest struct {
	X      *int
	Y      *int
	Radius int
	Save   bool
	Note   string
}

// SamplerService reads one color from an uploaded camera frame.
type SamplerService struct {
	cfg     config.Config
	catalog *CatalogService
	pub     Publisher
}

func NewSamplerService(cfg config.Config, catalog *CatalogService, pub Publisher) *SamplerService {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &SamplerService{cfg: cfg, catalog: catalog, pub: pub}
}

func (s *SamplerService) SampleFrame(frame []byte, req SampleRequest) (model.Sample, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(frame))
	if err != nil {
		return model.Sample{}, fmt.Errorf("%w: %v", ErrUndecodableFrame, err)
	}
	img, err := imaging.Decode(bytes.NewReader(frame), imaging.AutoOrientation(true))
	if err != nil {
		return model.Sample{}, fmt.Errorf("%w: %s: %v", ErrUndecodableFrame, format, err)
	}

	b := img.Bounds()
	x := b.Dx() / 2
	y := b.Dy() / 2
	if req.X != nil {
		x = *req.X
	}
	if req.Y != nil {
		y = *req.Y
	}
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return model.Sample{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrPointOutOfBounds, x, y, b.Dx(), b.Dy())
	}
	radius := req.Radius
	if radius < 0 {
		radius = s.cfg.SampleRadius
	}

	rgb := averageBox(img, x, y, radius)
	hex := rgb.Hex()
	sample := model.Sample{
		Hex:         hex,
		RGB:         rgb,
		Name:        colorkit.Name(hex),
		X:           x,
		Y:           y,
		Radius:      radius,
		FrameWidth:  b.Dx(),
		FrameHeight: b.Dy(),
		Format:      format,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if req.Save && s.catalog != nil {
		rec, err := s.catalog.AddColorToHistory(hex, "", req.Note)
		if err != nil {
			return model.Sample{}, err
		}
		sample.Record = &rec
	}
	s.pub.Publish("color.sampled", sample)
	return sample, nil
}

// averageBox returns the mean color of the box around (x,y), with x and y
// relative to the image origin. Alpha is ignored.
func averageBox(img image.Image, x, y, radius int) colorkit.RGB {
	b := img.Bounds()
	rect := image.Rect(x-radius, y-radius, x+radius+1, y+radius+1).
		Add(b.Min).
		Intersect(b)
	box := imaging.Crop(img, rect)

	var sr, sg, sb, n int
	for i := 0; i+3 < len(box.Pix); i += 4 {
		sr += int(box.Pix[i])
		sg += int(box.Pix[i+1])
		sb += int(box.Pix[i+2])
		n++
	}
	if n == 0 {
		return colorkit.RGB{}
	}
	return colorkit.RGB{
		R: (sr + n/2) / n,
		G: (sg + n/2) / n,
		B: (sb + n/2) / n,
	}
}
