// Package config loads lexc tool configuration from a YAML file and the
// environment.
package config

// Config is the root tool configuration.
type Config struct {
	// SpecsDir is the lexicon source directory used when a command is not
	// given one.
	SpecsDir string `yaml:"specs_dir" env:"LEXC_SPECS_DIR" env-default:"./specs"`

	// DBPath is the compile history database. Empty disables history.
	DBPath string `yaml:"db_path" env:"LEXC_DB"`

	// Strict makes compile exit non-zero when any error diagnostic is reported.
	Strict bool `yaml:"strict" env:"LEXC_STRICT" env-default:"false"`

	Log      LogConfig      `yaml:"log"`
	Compiler CompilerConfig `yaml:"compiler"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LEXC_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LEXC_LOG_FORMAT" env-default:"text"`
}

// CompilerConfig holds the junction and phonotactic settings of a compilation.
type CompilerConfig struct {
	Clusters        string `yaml:"clusters"         env:"LEXC_CLUSTERS"         env-default:"elide"`
	Epenthetic      string `yaml:"epenthetic"       env:"LEXC_EPENTHETIC"       env-default:"g"`
	EpentheticVowel string `yaml:"epenthetic_vowel" env:"LEXC_EPENTHETIC_VOWEL" env-default:"a"`
	Vowels          string `yaml:"vowels"           env:"LEXC_VOWELS"           env-default:"aeiou"`
	Precedence      string `yaml:"precedence"       env:"LEXC_PRECEDENCE"       env-default:"ktpcdbxsfjzvgnmrl"`

	// MaxRootLength flags roots of this many phonemes or more.
	// Zero or a negative value disables the check.
	MaxRootLength int `yaml:"max_root_length" env:"LEXC_MAX_ROOT_LENGTH" env-default:"7"`
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		SpecsDir: "./specs",
		Log:      LogConfig{Level: "warn", Format: "text"},
		Compiler: DefaultCompiler(),
	}
}

// DefaultCompiler returns the standard compiler settings.
func DefaultCompiler() CompilerConfig {
	return CompilerConfig{
		Clusters:        "elide",
		Epenthetic:      "g",
		EpentheticVowel: "a",
		Vowels:          "aeiou",
		Precedence:      "ktpcdbxsfjzvgnmrl",
		MaxRootLength:   7,
	}
}
