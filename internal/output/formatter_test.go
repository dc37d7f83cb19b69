package output_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonro/DomainAnalyser/internal/output"
)

type fakeResult struct {
	Value string `json:"value"`
}

func (f *fakeResult) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, "text: "+f.Value+"\n")
	return err
}

func (f *fakeResult) WritePlain(w io.Writer) error {
	_, err := io.WriteString(w, f.Value+"\n")
	return err
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatJSON, &fakeResult{Value: "x"}))
	assert.JSONEq(t, `{"value":"x"}`, buf.String())
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatText, &fakeResult{Value: "x"}))
	assert.Equal(t, "text: x\n", buf.String())
}

func TestWrite_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatPlain, &fakeResult{Value: "x"}))
	assert.Equal(t, "x\n", buf.String())
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.Format("yaml"), &fakeResult{})
	assert.Error(t, err)
}

func TestWrite_TextUnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.FormatText, struct{}{})
	assert.Error(t, err)
}
