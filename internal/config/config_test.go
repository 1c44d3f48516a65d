package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
remote:
  feed:
    superlike_boost: 35
    min_pool_size: 5
  swipe:
    rate_per_minute: 40
  likes:
    unseen_count_ttl: 45s
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Remote.Feed.SuperLikeBoost != 35 {
		t.Fatalf("unexpected superlike boost: %d", cfg.Remote.Feed.SuperLikeBoost)
	}
	if cfg.Remote.Feed.MinPoolSize != 5 {
		t.Fatalf("unexpected min pool size: %d", cfg.Remote.Feed.MinPoolSize)
	}
	if cfg.Remote.Feed.DefaultMatchScore != 70 {
		t.Fatalf("default match score should keep its default, got %d", cfg.Remote.Feed.DefaultMatchScore)
	}
	if cfg.Remote.Swipe.RatePerMinute != 40 {
		t.Fatalf("unexpected swipe rate/min: %d", cfg.Remote.Swipe.RatePerMinute)
	}
	if cfg.Remote.Likes.UnseenCountTTL.Seconds() != 45 {
		t.Fatalf("unexpected unseen count ttl: %s", cfg.Remote.Likes.UnseenCountTTL)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	def := Default()
	if cfg.HTTP.Addr != def.HTTP.Addr {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Remote.Feed.SuperLikeBoost != def.Remote.Feed.SuperLikeBoost {
		t.Fatalf("unexpected superlike boost: %d", cfg.Remote.Feed.SuperLikeBoost)
	}
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("FEED_SUPERLIKE_BOOST", "12")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Remote.Feed.SuperLikeBoost != 12 {
		t.Fatalf("unexpected superlike boost: %d", cfg.Remote.Feed.SuperLikeBoost)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL", "POSTGRES_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_ACCESS_TTL", "FEED_SUPERLIKE_BOOST", "FEED_MIN_POOL_SIZE",
	} {
		t.Setenv(key, "")
	}
}
