package ssml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

const maxBreakMs = 10000

// state carries the multipliers accumulated from enclosing prosody/emphasis
// elements; it is copied onto a stack on every StartElement and popped on
// the matching EndElement, so unknown elements leave it unchanged.
type state struct {
	rateMult, pitchMult, volumeMult float64
	durationMult, amplitudeMult     float64
}

func rootState() state {
	return state{rateMult: 1, pitchMult: 1, volumeMult: 1, durationMult: 1, amplitudeMult: 1}
}

// capture accumulates the text content of a say-as or sub element so it can
// be transformed (spelled out, or replaced by an alias) as a unit once its
// end tag is seen.
type capture struct {
	tag        string
	interpret  string // say-as interpret-as
	alias      string // sub alias
	isSub      bool
	buf        strings.Builder
}

// Parse recognizes markup and returns the flattened element sequence.
// Malformed XML (mismatched tags, invalid syntax) fails with [*ParseError]
// carrying the decoder's byte offset.
func Parse(markup string) ([]Element, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var (
		elements []Element
		stack    = []state{rootState()}
		cap_     *capture
	)

	emitText := func(text string) {
		if text == "" {
			return
		}
		top := stack[len(stack)-1]
		elements = append(elements, Element{
			Kind:          KindText,
			Text:          text,
			RateMult:      top.rateMult,
			PitchMult:     top.pitchMult,
			VolumeMult:    top.volumeMult,
			DurationMult:  top.durationMult,
			AmplitudeMult: top.amplitudeMult,
		})
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{ByteOffset: dec.InputOffset(), Message: err.Error()}
		}

		switch t := tok.(type) {
		case xml.CharData:
			if cap_ != nil {
				cap_.buf.Write(t)
			} else {
				emitText(string(t))
			}

		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			switch name {
			case "break":
				elements = append(elements, Element{Kind: KindBreak, BreakMs: breakMsFromAttrs(t.Attr)})
				stack = append(stack, stack[len(stack)-1])
			case "prosody":
				top := stack[len(stack)-1]
				top.rateMult *= rateMultFromAttr(attrValue(t.Attr, "rate"))
				top.pitchMult *= percentMultFromAttr(attrValue(t.Attr, "pitch"))
				top.volumeMult *= percentMultFromAttr(attrValue(t.Attr, "volume"))
				stack = append(stack, top)
			case "emphasis":
				top := stack[len(stack)-1]
				d, a := emphasisMultFromAttr(attrValue(t.Attr, "level"))
				top.durationMult *= d
				top.amplitudeMult *= a
				stack = append(stack, top)
			case "say-as":
				cap_ = &capture{tag: name, interpret: strings.ToLower(attrValue(t.Attr, "interpret-as"))}
				stack = append(stack, stack[len(stack)-1])
			case "sub":
				cap_ = &capture{tag: name, isSub: true, alias: attrValue(t.Attr, "alias")}
				stack = append(stack, stack[len(stack)-1])
			default:
				stack = append(stack, stack[len(stack)-1])
			}

		case xml.EndElement:
			name := strings.ToLower(t.Name.Local)
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			switch name {
			case "say-as":
				if cap_ != nil {
					emitText(expandSayAs(cap_.buf.String(), cap_.interpret))
					cap_ = nil
				}
			case "sub":
				if cap_ != nil {
					emitText(cap_.alias)
					cap_ = nil
				}
			case "p", "s":
				elements = append(elements, Element{Kind: KindBreak, BreakMs: 250})
			}
		}
	}

	return elements, nil
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value
		}
	}
	return ""
}

func breakMsFromAttrs(attrs []xml.Attr) int {
	if t := attrValue(attrs, "time"); t != "" {
		if ms, ok := parseDurationMs(t); ok {
			return clampBreakMs(ms)
		}
	}
	switch attrValue(attrs, "strength") {
	case "x-weak":
		return 50
	case "weak":
		return 100
	case "strong":
		return 500
	case "x-strong":
		return 1000
	case "medium":
		return 250
	default:
		return 250
	}
}

func parseDurationMs(s string) (int, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "ms"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "ms"), 64)
		if err != nil {
			return 0, false
		}
		return int(v), true
	case strings.HasSuffix(s, "s"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "s"), 64)
		if err != nil {
			return 0, false
		}
		return int(v * 1000), true
	default:
		return 0, false
	}
}

func clampBreakMs(ms int) int {
	if ms < 0 {
		return 0
	}
	if ms > maxBreakMs {
		return maxBreakMs
	}
	return ms
}

func rateMultFromAttr(v string) float64 {
	switch v {
	case "":
		return 1
	case "slow":
		return 0.75
	case "medium":
		return 1.0
	case "fast":
		return 1.35
	default:
		return percentMultFromAttr(v)
	}
}

// percentMultFromAttr treats a "N%" value as a multiplicative factor of
// 100%. Any value that does not parse is ignored (treated as ×1), matching
// the "unknown attributes are ignored" tolerance for malformed ones too.
func percentMultFromAttr(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 1
	}
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 1
		}
		return n / 100
	}
	return 1
}

func emphasisMultFromAttr(level string) (durationMult, amplitudeMult float64) {
	switch level {
	case "strong":
		return 1.1, 1.3
	case "reduced":
		return 0.9, 0.8
	default:
		return 1, 1
	}
}

// expandSayAs renders text for a say-as interpretation. "digits" is a
// no-op: the G2P rule tables already expand a run of digits one at a time.
// "characters" and "spell-out" insert spaces between every rune so each
// becomes its own word, forcing the single-letter fallback rule for each
// one instead of the word-level digraph/context rules.
func expandSayAs(text, interpretAs string) string {
	switch interpretAs {
	case "characters", "spell-out":
		var b strings.Builder
		for i, r := range text {
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteRune(r)
		}
		return b.String()
	default:
		return text
	}
}
