package dom

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const dataPrefix = "data-"

// ErrMissingID is returned when a block element has no data-id attribute.
var ErrMissingID = errors.New("attribute missing: data-id")

// BlockOptions holds the data-* attributes of a block element.
type BlockOptions struct {
	// ID is the value of data-id.
	ID string `json:"id"`

	// Block is the value of data-block, usually naming the controller.
	Block string `json:"block,omitempty"`

	// Attrs maps every data-* attribute, prefix stripped, to its value.
	// It includes "id" and "block".
	Attrs map[string]string `json:"attrs"`

	// El is the element the options were read from.
	El *html.Node `json:"-"`
}

// Options reads the data-* attributes of n. n must carry a data-id
// attribute.
func Options(n *html.Node) (*BlockOptions, error) {
	opts := &BlockOptions{
		Attrs: dataAttrs(n),
		El:    n,
	}
	opts.ID = opts.Attrs["id"]
	opts.Block = opts.Attrs["block"]
	if opts.ID == "" {
		return nil, missingID(opts.Block)
	}
	return opts, nil
}

// Data returns the data-* attributes of the first element of sel. Like
// Options, it requires data-id.
func Data(sel *goquery.Selection) (map[string]string, error) {
	if sel.Length() == 0 {
		return nil, ErrMissingID
	}
	attrs := dataAttrs(sel.Get(0))
	if attrs["id"] == "" {
		return nil, missingID(attrs["block"])
	}
	return attrs, nil
}

func dataAttrs(n *html.Node) map[string]string {
	attrs := make(map[string]string)
	for _, a := range n.Attr {
		if a.Namespace != "" || !strings.HasPrefix(a.Key, dataPrefix) {
			continue
		}
		attrs[strings.TrimPrefix(a.Key, dataPrefix)] = a.Val
	}
	return attrs
}

func missingID(block string) error {
	if block == "" {
		return ErrMissingID
	}
	return &BlockError{Block: block, Err: ErrMissingID}
}

// BlockError annotates an error with the block it concerns.
type BlockError struct {
	Block string
	Err   error
}

func (e *BlockError) Error() string {
	return "block " + e.Block + ": " + e.Err.Error()
}

func (e *BlockError) Unwrap() error {
	return e.Err
}
