package m3u

import (
	"fmt"
	"io"
)

// LiveDuration marks an entry as a live stream of unknown length.
const LiveDuration = -1

type Encoder struct {
	items []*Channel
}

func NewEncoder() *Encoder {
	return &Encoder{items: []*Channel{}}
}

func (p *Encoder) AddChannel(item *Channel) {
	p.items = append(p.items, item)
}

// Encode writes the #EXTM3U header followed by every channel in insertion order.
func (p *Encoder) Encode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "#EXTM3U\n"); err != nil {
		return err
	}

	for _, item := range p.items {
		if err := item.encode(w); err != nil {
			return err
		}
	}

	return nil
}
