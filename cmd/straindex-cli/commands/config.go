package commands

import (
	"context"
	"os"

	"straindex-backend/lib/blob"
	"straindex-backend/lib/configutil"
	"straindex-backend/lib/geneticstore"
	"straindex-backend/lib/jobtrack"
	"straindex-backend/lib/serviceutil"
)

// StorageConfig points at one blob location, either an s3-compatible
// bucket or a local directory.
type StorageConfig struct {
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	LocalDir        string `json:"local_dir"`
}

func (c StorageConfig) options() blob.Options {
	return blob.Options{
		Bucket:          c.Bucket,
		Region:          c.Region,
		Endpoint:        c.Endpoint,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		LocalDir:        c.LocalDir,
	}
}

type Config struct {
	// Menus is the archive the downloader writes payloads into;
	// Genetics is where the strain index lives
	Menus    StorageConfig `json:"menus"`
	Genetics StorageConfig `json:"genetics"`
	JobsDB   string        `json:"jobs_db"`
}

func readConfig() Config {
	cfg, err := configutil.ReadRecursively[Config]("straindex.json5")
	if os.IsNotExist(err) {
		// everything has a local-filesystem default
		return Config{}
	}
	if err != nil {
		serviceutil.Fatal("failed to read straindex.json5", err)
	}
	return cfg
}

func openMenuSource(ctx context.Context, cfg Config) blob.Store {
	opts := cfg.Menus.options()
	if opts.LocalDir == "" {
		opts.LocalDir = "./menu_data"
	}
	source, err := blob.Open(ctx, opts)
	if err != nil {
		serviceutil.Fatal("failed to open menu archive", err)
	}
	return source
}

func openGeneticsStore(ctx context.Context, cfg Config) *geneticstore.Store {
	store, err := geneticstore.Open(ctx, cfg.Genetics.options())
	if err != nil {
		serviceutil.Fatal("failed to open genetics store", err)
	}
	return store
}

// openJobs returns nil when no ledger is configured.
func openJobs(cfg Config) *jobtrack.DB {
	if cfg.JobsDB == "" {
		return nil
	}
	jobs, err := jobtrack.Open(cfg.JobsDB)
	if err != nil {
		serviceutil.Fatal("failed to open jobs ledger", err)
	}
	return jobs
}
