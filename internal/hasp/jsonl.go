package hasp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// jsonlObject is the wire representation of one JSONL line. Geometry fields
// are pointers so that page markers omit them entirely while placed objects
// keep legitimate zero coordinates.
type jsonlObject struct {
	Page     int        `json:"page"`
	ID       int        `json:"id"`
	Obj      ObjectKind `json:"obj"`
	X        *int       `json:"x,omitempty"`
	Y        *int       `json:"y,omitempty"`
	W        *int       `json:"w,omitempty"`
	H        *int       `json:"h,omitempty"`
	Entity   string     `json:"entity,omitempty"`
	Text     string     `json:"text,omitempty"`
	Color    string     `json:"color,omitempty"`
	BgColor  string     `json:"bg_color,omitempty"`
	FontSize int        `json:"font_size,omitempty"`
	Min      *int       `json:"min,omitempty"`
	Max      *int       `json:"max,omitempty"`
	Val      *int       `json:"val,omitempty"`
	Options  string     `json:"options,omitempty"`
}

func toWire(o Object) jsonlObject {
	w := jsonlObject{
		Page:     o.Page,
		ID:       o.ID,
		Obj:      o.Kind,
		Entity:   o.Entity,
		Text:     o.Text,
		Color:    o.Color,
		BgColor:  o.BgColor,
		FontSize: o.FontSize,
		Options:  o.Options,
	}
	if !o.IsPage() {
		x, y, wd, h := o.X, o.Y, o.W, o.H
		w.X, w.Y, w.W, w.H = &x, &y, &wd, &h
	}
	if o.Kind == KindSlider {
		mn, mx, val := o.Min, o.Max, o.Val
		w.Min, w.Max, w.Val = &mn, &mx, &val
	}
	return w
}

func fromWire(w jsonlObject) Object {
	o := Object{
		Page:     w.Page,
		ID:       w.ID,
		Kind:     w.Obj,
		Entity:   w.Entity,
		Text:     w.Text,
		Color:    w.Color,
		BgColor:  w.BgColor,
		FontSize: w.FontSize,
		Options:  w.Options,
	}
	if w.X != nil {
		o.X = *w.X
	}
	if w.Y != nil {
		o.Y = *w.Y
	}
	if w.W != nil {
		o.W = *w.W
	}
	if w.H != nil {
		o.H = *w.H
	}
	if w.Min != nil {
		o.Min = *w.Min
	}
	if w.Max != nil {
		o.Max = *w.Max
	}
	if w.Val != nil {
		o.Val = *w.Val
	}
	return o
}

// EncodeJSONL renders objects as an openHASP pages file: one compact JSON
// object per line, page markers first keep their input order, trailing
// newline included.
func EncodeJSONL(objects []Object) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, o := range objects {
		if err := ValidateKind(o.Kind); err != nil {
			return nil, fmt.Errorf("encoding object %d: %w", i, err)
		}
		// json.Encoder appends the newline between records.
		if err := enc.Encode(toWire(o)); err != nil {
			return nil, fmt.Errorf("encoding object %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

// DecodeJSONL parses an openHASP pages file. Blank lines are skipped.
// Unknown object kinds are preserved as-is so imports can map them; a line
// that is not valid JSON fails the whole decode.
func DecodeJSONL(r io.Reader) ([]Object, error) {
	var objects []Object
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var w jsonlObject
		if err := json.Unmarshal([]byte(text), &w); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedJSONL, line, err)
		}
		objects = append(objects, fromWire(w))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading jsonl: %w", err)
	}
	return objects, nil
}
