// internal/ledger/variant.go
package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownVariant = errors.New("unknown variant tag")

// Variant is a tagged union value. The ledger encodes it as {"_tag": "name"}
// with an optional payload under "value"; a bare string is accepted as well.
type Variant struct {
	Tag   string  `json:"_tag"`
	Value *BigInt `json:"value,omitempty"`
}

func Tag(name string) Variant {
	return Variant{Tag: name}
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &v.Tag)
	}

	type plain Variant
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Tag == "" {
		return fmt.Errorf("%w: missing _tag in %s", ErrUnknownVariant, string(data))
	}
	*v = Variant(p)
	return nil
}

func optTag[T ~string](v *T) *Variant {
	if v == nil {
		return nil
	}
	t := Tag(string(*v))
	return &t
}

// enum converts a variant to a model enum, rejecting tags outside the enum.
func enum[T interface {
	~string
	Valid() bool
}](d *decoder, v Variant) T {
	out := T(v.Tag)
	if !out.Valid() {
		d.fail(fmt.Errorf("%w: %q", ErrUnknownVariant, v.Tag))
	}
	return out
}

func optEnum[T interface {
	~string
	Valid() bool
}](d *decoder, v *Variant) *T {
	if v == nil {
		return nil
	}
	out := enum[T](d, *v)
	return &out
}

// Blob is a media attachment handle. The ledger returns either the direct URL
// or an object carrying it.
type Blob struct {
	URL string
}

func (b Blob) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.URL)
}

func (b *Blob) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.URL)
	}
	var obj struct {
		DirectURL string `json:"directUrl"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	b.URL = obj.DirectURL
	if b.URL == "" {
		b.URL = obj.URL
	}
	return nil
}
