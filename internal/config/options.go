package config

import (
	"log/slog"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/derive"
	"github.com/roach88/lexc/internal/junction"
	"github.com/roach88/lexc/internal/phonology"
)

// CompileOptions builds compiler options from the settings.
// A nil families registry selects the built-in derivation families.
func (c CompilerConfig) CompileOptions(families *derive.Registry, logger *slog.Logger) (compiler.Options, error) {
	validator := phonology.Default()
	asm, err := c.assembler(validator)
	if err != nil {
		return compiler.Options{}, err
	}

	return compiler.Options{
		Assembler:     asm,
		Validator:     validator,
		Families:      families,
		MaxRootLength: max(c.MaxRootLength, 0),
		Logger:        logger,
	}, nil
}

func (c CompilerConfig) assembler(v *phonology.Validator) (*junction.Assembler, error) {
	return junction.New(junction.Options{
		Epenthetic:      c.Epenthetic,
		Vowels:          c.Vowels,
		Precedence:      c.Precedence,
		Clusters:        junction.ClusterStrategy(c.Clusters),
		EpentheticVowel: c.EpentheticVowel,
		Check:           v.Valid,
	})
}
