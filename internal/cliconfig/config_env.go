package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (BEATSMITH_*). It respects flags that have been explicitly set
// (changed map). Returns error if any environment variable has an
// invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("loops", os.Getenv("BEATSMITH_LOOPS"), &cfg.Loops)

	if err := s.setIntFromString("ticks", os.Getenv("BEATSMITH_TICKS"), &cfg.Ticks); err != nil {
		return err
	}
	if err := s.setIntFromString("beats-per-bar", os.Getenv("BEATSMITH_BEATS_PER_BAR"), &cfg.BeatsPerBar); err != nil {
		return err
	}
	if err := s.setFloatFromString("tolerance", os.Getenv("BEATSMITH_TOLERANCE"), &cfg.Tolerance); err != nil {
		return err
	}
	if err := s.setInt64FromString("seed", os.Getenv("BEATSMITH_SEED"), &cfg.Seed); err != nil {
		return err
	}

	return nil
}
