package config

func ValidateForRun(cfg *Config) error {
	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		return ErrRedisAddrMissing
	}
	return cfg.Scheduler.Validate()
}
