package config

import "testing"

func TestLoadDefaultVideoAssetCount(t *testing.T) {
	t.Setenv("DUAL_CLIP_TEMPLATE", "")

	cfg := Load()
	if cfg.RequiredVideoAssets != VideoAssetCount {
		t.Fatalf("expected single-clip selection size %d, got %d", VideoAssetCount, cfg.RequiredVideoAssets)
	}
}

func TestLoadDualClipTemplate(t *testing.T) {
	t.Setenv("DUAL_CLIP_TEMPLATE", "true")

	cfg := Load()
	if cfg.RequiredVideoAssets != DualVideoAssetCount {
		t.Fatalf("expected dual-clip selection size %d, got %d", DualVideoAssetCount, cfg.RequiredVideoAssets)
	}
}

func TestLoadSplitsBrokerList(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "kafka-1:9092" || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("broker list parsed wrong: %v", cfg.KafkaBrokers)
	}
}
