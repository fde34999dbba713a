package boss

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"
)

// VariantChooser decides, at trigger time, how the ultimate resolves.
type VariantChooser interface {
	Choose(distance float64, health Health) Variant
}

type fixedVariant Variant

func (f fixedVariant) Choose(float64, Health) Variant { return Variant(f) }

// alternatingVariant starts with the heavy swing and flips every use.
type alternatingVariant struct {
	next Variant
}

func (a *alternatingVariant) Choose(float64, Health) Variant {
	v := a.next
	if v == "" {
		v = VariantMelee
	}
	if v == VariantMelee {
		a.next = VariantRanged
	} else {
		a.next = VariantMelee
	}
	return v
}

const variantDispatchScript = `
__variant = choose(__distance, __health, __max_health)
`

// ScriptChooser asks a tengo script for the variant. The script must define
// choose(distance, health, max_health) returning "melee" or "ranged".
type ScriptChooser struct {
	compiled *tengo.Compiled
	fallback Variant
	log      *logrus.Entry
}

func NewScriptChooser(src []byte, fallback Variant, log *logrus.Entry) (*ScriptChooser, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, fmt.Errorf("boss: ultimate script is empty")
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + variantDispatchScript))
	_ = script.Add("__distance", 0.0)
	_ = script.Add("__health", 0)
	_ = script.Add("__max_health", 0)
	_ = script.Add("__variant", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("boss: compile ultimate script: %w", err)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ScriptChooser{compiled: compiled, fallback: fallback, log: log}, nil
}

func (c *ScriptChooser) Choose(distance float64, health Health) Variant {
	if err := c.run(distance, health); err != nil {
		c.log.WithError(err).Warn("boss: ultimate script failed, using fallback variant")
		return c.fallback
	}
	v, err := ParseVariant(c.compiled.Get("__variant").String())
	if err != nil || (v != VariantMelee && v != VariantRanged) {
		c.log.WithField("result", c.compiled.Get("__variant").String()).Warn("boss: ultimate script returned an unusable variant")
		return c.fallback
	}
	return v
}

func (c *ScriptChooser) run(distance float64, health Health) error {
	if err := c.compiled.Set("__distance", distance); err != nil {
		return err
	}
	if err := c.compiled.Set("__health", health.Current); err != nil {
		return err
	}
	if err := c.compiled.Set("__max_health", health.Max); err != nil {
		return err
	}
	return c.compiled.Run()
}

// newVariantChooser builds the chooser named by cfg.UltimateVariant. A script
// that fails to compile degrades to the ranged variant.
func newVariantChooser(cfg Config, log *logrus.Entry) VariantChooser {
	switch cfg.UltimateVariant {
	case VariantMelee:
		return fixedVariant(VariantMelee)
	case VariantAlternate:
		return &alternatingVariant{}
	case VariantScript:
		chooser, err := NewScriptChooser(cfg.UltimateScript, VariantRanged, log)
		if err != nil {
			log.WithError(err).Warn("boss: ultimate script unavailable, using ranged variant")
			return fixedVariant(VariantRanged)
		}
		return chooser
	default:
		return fixedVariant(VariantRanged)
	}
}
