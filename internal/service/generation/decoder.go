package generation

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// 生成服务的流式回包为按行分隔的记录，"0:" 前缀的行携带文本增量，
// 其余前缀（如 "d:" 结束元数据）与该解码器无关。
const deltaTag = "0:"

type deltaPayload struct {
	Content string `json:"content"`
}

// DecodeStream 逐块读取回包并拼接文本增量，流正常结束后返回累计文本
// （可能为空串）。解析失败的行静默丢弃，不中断流。
//
// 每次读到的块独立切行处理，不做跨块的行重组：被读边界截断的记录会
// 整行丢弃。这是与参考客户端保持一致的已知限制。
func DecodeStream(r io.Reader) (string, error) {
	var accumulated strings.Builder
	buf := make([]byte, 4096)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, line := range strings.Split(string(buf[:n]), "\n") {
				if delta, ok := decodeLine(line); ok {
					accumulated.WriteString(delta)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return accumulated.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// decodeLine 解析单行记录，返回其携带的文本增量。非增量行、残缺行
// 以及缺少 content 字段的行均返回 ok=false。
func decodeLine(line string) (string, bool) {
	if !strings.HasPrefix(line, deltaTag) {
		return "", false
	}

	var payload deltaPayload
	if err := json.Unmarshal([]byte(line[len(deltaTag):]), &payload); err != nil {
		return "", false
	}
	if payload.Content == "" {
		return "", false
	}
	return payload.Content, true
}
