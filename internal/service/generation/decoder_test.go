package generation

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// chunkReader 每次 Read 只交付一个预设块，模拟分块到达的网络流。
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	chunk := r.chunks[0]
	r.chunks = r.chunks[1:]
	return copy(p, chunk), nil
}

func TestDecodeStreamAccumulatesDeltas(t *testing.T) {
	r := &chunkReader{chunks: []string{
		"0:{\"content\":\"你好\"}\n0:{\"content\":\"，朋友\"}\n",
		"0:{\"content\":\"。\"}\n",
	}}

	got, err := DecodeStream(r)
	if err != nil {
		t.Fatalf("DecodeStream err: %v", err)
	}
	if got != "你好，朋友。" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestDecodeStreamIgnoresOtherTags(t *testing.T) {
	r := strings.NewReader("0:{\"content\":\"回答\"}\nd:{\"finishReason\":\"stop\"}\ne:metadata\n")

	got, err := DecodeStream(r)
	if err != nil {
		t.Fatalf("DecodeStream err: %v", err)
	}
	if got != "回答" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestDecodeStreamDiscardsMalformedLines(t *testing.T) {
	r := strings.NewReader("0:{not-json\n0:{\"content\":\"有效\"}\n0:{\"other\":\"忽略\"}\n")

	got, err := DecodeStream(r)
	if err != nil {
		t.Fatalf("DecodeStream err: %v", err)
	}
	if got != "有效" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestDecodeStreamEmptyStream(t *testing.T) {
	got, err := DecodeStream(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeStream err: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

// 行被读边界截断时整行丢弃，不做跨块重组。该用例固化这一既有行为。
func TestDecodeStreamDropsLineSplitAcrossChunks(t *testing.T) {
	r := &chunkReader{chunks: []string{
		"0:{\"content\":\"He",
		"llo\"}\n",
	}}

	got, err := DecodeStream(r)
	if err != nil {
		t.Fatalf("DecodeStream err: %v", err)
	}
	if got != "" {
		t.Fatalf("split line should be discarded, got %q", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestDecodeStreamPropagatesReadError(t *testing.T) {
	if _, err := DecodeStream(failingReader{}); err == nil {
		t.Fatal("expected read error")
	}
}
