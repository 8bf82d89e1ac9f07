package validate

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/abema/go-mp4"
	"github.com/at-wat/ebml-go"
	"github.com/at-wat/ebml-go/webm"
)

// MetadataProber reads the duration from container metadata: the moov/mvhd box
// for ISO BMFF files (mp4, mov) and the Segment Info element for webm.
type MetadataProber struct{}

func NewMetadataProber() *MetadataProber {
	return &MetadataProber{}
}

func (p *MetadataProber) Duration(ctx context.Context, data []byte, mime string) (float64, error) {
	type result struct {
		seconds float64
		err     error
	}
	ch := make(chan result, 1)

	go func() {
		var r result
		if strings.Contains(mime, "webm") {
			r.seconds, r.err = webmDuration(data)
		} else {
			r.seconds, r.err = mp4Duration(data)
		}
		ch <- r
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case r := <-ch:
		return r.seconds, r.err
	}
}

func mp4Duration(data []byte) (float64, error) {
	info, err := mp4.Probe(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("probe mp4: %w", err)
	}
	if info.Timescale == 0 {
		return 0, fmt.Errorf("mp4 metadata has no timescale")
	}
	return float64(info.Duration) / float64(info.Timescale), nil
}

func webmDuration(data []byte) (float64, error) {
	var doc struct {
		Header  webm.EBMLHeader `ebml:"EBML"`
		Segment webm.Segment    `ebml:"Segment"`
	}
	if err := ebml.Unmarshal(bytes.NewReader(data), &doc); err != nil {
		return 0, fmt.Errorf("parse webm: %w", err)
	}

	info := doc.Segment.Info
	if info.Duration <= 0 {
		return 0, fmt.Errorf("webm metadata has no duration")
	}
	// Duration is expressed in TimecodeScale units (nanoseconds per tick).
	scale := info.TimecodeScale
	if scale == 0 {
		scale = 1_000_000
	}
	return info.Duration * float64(scale) / 1e9, nil
}
