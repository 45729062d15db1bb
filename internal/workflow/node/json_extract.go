package node

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ExtractJSONObject 从模型输出中截取第一个完整 JSON 值（对象/数组）。
// 尽管提示词要求纯 JSON 输出，模型仍可能带上 markdown 代码块或解释性文字，
// 这里做容错截取，截取失败时原样返回交给上层解析报错。
func ExtractJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	raw = stripCodeFence(raw)

	// 定位第一个 JSON 起始符，对象优先于数组（按出现位置）。
	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start, end := -1, -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(raw, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	// 截取结果必须以 JSON 对象/数组开头，否则视为截取失败。
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return strings.TrimSpace(s)
	}
	if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
		return raw
	}

	// 非对象/数组开头时消费到 EOF 做一次完整性检查。
	dec = json.NewDecoder(strings.NewReader(raw))
	for {
		if _, e := dec.Token(); e != nil {
			if errors.Is(e, io.EOF) {
				return raw
			}
			return strings.TrimSpace(s)
		}
	}
}

// stripCodeFence 去掉包裹输出的 markdown 代码块标记（```json ... ```）。
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := s[3:]
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		// 丢弃 ```json 这样的语言标记行
		body = body[i+1:]
	}
	if i := strings.LastIndex(body, "```"); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}
