package prompt

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/bodycomp-cli/internal/reference"
	"github.com/KaramelBytes/bodycomp-cli/internal/store"
	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
)

// DefaultInstructions asks for a plain-language report in Traditional Chinese.
const DefaultInstructions = "請以繁體中文撰寫一份 InBody 身體組成分析報告：" +
	"依據量測數值逐項說明 BMI、體脂率、內臟脂肪、骨骼肌量與水分平衡 (ECW/TBW) 的意義，" +
	"比較左右肢體差異，僅引用參考段落中的標準與建議，並以條列方式提出具體的飲食與運動建議。"

// Input is everything a prompt is built from.
type Input struct {
	Store        *store.Store
	Passages     []reference.Section
	Instructions string
	// TokenLimit truncates the prompt when positive.
	TokenLimit int
}

// Prompt is the assembled text with its token estimate.
type Prompt struct {
	Text      string
	Tokens    int
	Breakdown map[string]int
	Truncated bool
}

// Build assembles the prompt: instructions, metric profile, reference
// passages, then the task restated.
func Build(in Input) (Prompt, error) {
	if in.Store == nil || in.Store.Len() == 0 {
		return Prompt{}, errors.New("no metrics to describe")
	}
	instructions := strings.TrimSpace(in.Instructions)
	if instructions == "" {
		instructions = DefaultInstructions
	}
	profile := Profile(in.Store)

	var passages strings.Builder
	if len(in.Passages) == 0 {
		passages.WriteString("(none)\n\n")
	}
	for i, p := range in.Passages {
		fmt.Fprintf(&passages, "--- Passage %d: ", i+1)
		if p.Heading != "" {
			passages.WriteString(p.Heading)
			passages.WriteString(" ")
		}
		fmt.Fprintf(&passages, "(%s) ---\n", filepath.Base(p.Source))
		passages.WriteString(p.Text)
		passages.WriteString("\n\n")
	}

	var sb strings.Builder
	sb.WriteString("[INSTRUCTIONS]\n")
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString("[METRIC PROFILE]\n")
	sb.WriteString(profile)
	sb.WriteString("\n\n")
	sb.WriteString("[REFERENCE PASSAGES]\n")
	sb.WriteString(passages.String())
	sb.WriteString("[TASK]\n")
	sb.WriteString("Based on the metric profile and reference passages above, please: ")
	sb.WriteString(instructions)
	sb.WriteString("\n")

	out := Prompt{
		Text: sb.String(),
		Breakdown: utils.TokenBreakdown(map[string]string{
			"instructions": instructions,
			"profile":      profile,
			"passages":     passages.String(),
		}),
	}
	if in.TokenLimit > 0 && utils.CountTokens(out.Text) > in.TokenLimit {
		out.Text = utils.TruncateToTokenLimit(out.Text, in.TokenLimit)
		out.Truncated = true
	}
	out.Tokens = utils.CountTokens(out.Text)
	return out, nil
}
