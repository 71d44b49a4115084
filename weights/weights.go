// Copyright (c) 2026, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package weights exports trained network weights for downstream hardware
parameter generation: fixed-point quantization by an integer scale, and a
structured JSON record holding the architecture dimensions, the raw and
quantized weight matrices, the achieved accuracy, and the labeled pattern
set.
*/
package weights

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/emer/etable/etensor"
	"github.com/goki/mat32"
)

// DefaultScale is the standard fixed-point quantization scale: weights in
// [0,1] map onto integers 0..15 (4-bit hardware weights).
const DefaultScale = 15

// Quantize maps each weight of a Send x Recv matrix to round(w * scale),
// returning a fresh integer tensor of the same shape.
func Quantize(wts *etensor.Float32, scale int) *etensor.Int64 {
	q := etensor.NewInt64([]int{wts.Dim(0), wts.Dim(1)}, nil, []string{"Send", "Recv"})
	for i, w := range wts.Values {
		q.Values[i] = int64(mat32.Round(w * float32(scale)))
	}
	return q
}

// Dequantize maps quantized integers back to real weights by dividing by
// the scale.  Round-tripping through Quantize reproduces the original weight
// to within 1/scale.
func Dequantize(q *etensor.Int64, scale int) *etensor.Float32 {
	wts := etensor.NewFloat32([]int{q.Dim(0), q.Dim(1)}, nil, []string{"Send", "Recv"})
	for i, v := range q.Values {
		wts.Values[i] = float32(v) / float32(scale)
	}
	return wts
}

// Arch is the network architecture dimensions as recorded in the export.
type Arch struct {
	NInput  int `json:"n_input"`
	NHidden int `json:"n_hidden"`
	NOutput int `json:"n_output"`
}

// Record is the structured weight export consumed by the hardware parameter
// generator.  Matrices are row = sending unit, column = receiving unit.
type Record struct {
	Arch        Arch               `json:"network_architecture"`
	InHid       [][]float32        `json:"weights_input_hidden"`
	HidOut      [][]float32        `json:"weights_hidden_output"`
	InHidQuant  [][]int64          `json:"weights_input_hidden_quantized"`
	HidOutQuant [][]int64          `json:"weights_hidden_output_quantized"`
	FinalAcc    float64            `json:"final_accuracy"`
	Patterns    map[string][][]int `json:"patterns"`
	Scale       int                `json:"quantization_scale"`
}

// NewRecord builds a Record from the two weight matrices (Send x Recv
// tensors, as returned by the network's weight-matrix accessor), quantizing
// both at the given scale.  Accuracy and the pattern set are filled in by
// the caller.
func NewRecord(inHid, hidOut *etensor.Float32, scale int) *Record {
	rec := &Record{Scale: scale}
	rec.Arch.NInput = inHid.Dim(0)
	rec.Arch.NHidden = inHid.Dim(1)
	rec.Arch.NOutput = hidOut.Dim(1)
	rec.InHid = FloatRows(inHid)
	rec.HidOut = FloatRows(hidOut)
	rec.InHidQuant = IntRows(Quantize(inHid, scale))
	rec.HidOutQuant = IntRows(Quantize(hidOut, scale))
	return rec
}

// FloatRows converts a 2D float tensor into nested row slices for JSON.
func FloatRows(t *etensor.Float32) [][]float32 {
	nr := t.Dim(0)
	nc := t.Dim(1)
	rows := make([][]float32, nr)
	for r := 0; r < nr; r++ {
		row := make([]float32, nc)
		for c := 0; c < nc; c++ {
			row[c] = t.Value([]int{r, c})
		}
		rows[r] = row
	}
	return rows
}

// IntRows converts a 2D integer tensor into nested row slices for JSON.
func IntRows(t *etensor.Int64) [][]int64 {
	nr := t.Dim(0)
	nc := t.Dim(1)
	rows := make([][]int64, nr)
	for r := 0; r < nr; r++ {
		row := make([]int64, nc)
		for c := 0; c < nc; c++ {
			row[c] = t.Value([]int{r, c})
		}
		rows[r] = row
	}
	return rows
}

// WriteJSON writes the record as indented JSON to given writer.
func (rec *Record) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// ReadJSON reads the record from JSON on given reader.
func (rec *Record) ReadJSON(r io.Reader) error {
	return json.NewDecoder(r).Decode(rec)
}

// Save writes the record as indented JSON to given file name.
func (rec *Record) Save(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	if err := rec.WriteJSON(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// Open reads the record from JSON in given file name.
func (rec *Record) Open(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return rec.ReadJSON(bufio.NewReader(fp))
}
