package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DefaultReportTitle    = "AgriTatva Water Usage Report"
	DefaultReportFileName = "water_usage_report.pdf"
)

// ReportConfig controls the static parts of the PDF report.
type ReportConfig struct {
	Title        string
	FileName     string
	TipsHeading  string
	Tips         []string
	IncludeChart bool
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Title:       DefaultReportTitle,
		FileName:    DefaultReportFileName,
		TipsHeading: "AI Tip:",
		Tips: []string{
			"To enhance water conservation, consider implementing precision irrigation techniques.",
			"Regularly monitor soil moisture levels and adjust irrigation schedules accordingly.",
			"Utilize rainwater harvesting systems to supplement irrigation needs.",
			"Educate farmers on water management practices for sustainable agriculture.",
		},
		IncludeChart: true,
	}
}

type ReportConfigHolder struct {
	current atomic.Value // holds ReportConfig
}

// NewReportConfigHolder reads report.yml from the usual locations and keeps it
// reloaded while the process runs. A missing file falls back to defaults.
func NewReportConfigHolder(log *zap.Logger) (*ReportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("report")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/agritatva")
	v.AddConfigPath(".")

	return newReportConfigHolder(v, log)
}

// NewReportConfigHolderFromFile loads the report config from an explicit path.
func NewReportConfigHolderFromFile(path string, log *zap.Logger) (*ReportConfigHolder, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return newReportConfigHolder(v, log)
}

// NewStaticReportConfigHolder returns a holder that never reloads.
func NewStaticReportConfigHolder(cfg ReportConfig) *ReportConfigHolder {
	holder := &ReportConfigHolder{}
	holder.current.Store(normalizeReportConfig(cfg))
	return holder
}

func newReportConfigHolder(v *viper.Viper, log *zap.Logger) (*ReportConfigHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("report.config")

	v.SetEnvPrefix("AGRITATVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultReportConfig()
	v.SetDefault("report.title", defaults.Title)
	v.SetDefault("report.fileName", defaults.FileName)
	v.SetDefault("report.tipsHeading", defaults.TipsHeading)
	v.SetDefault("report.tips", defaults.Tips)
	v.SetDefault("report.includeChart", defaults.IncludeChart)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	cfg, err := unmarshalReportConfig(v)
	if err != nil {
		return nil, err
	}

	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)

	if !fileLoaded {
		log.Info("report config file not found, using defaults")
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalReportConfig(v)
		if err != nil {
			log.Warn("invalid report config ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("report config reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

func (h *ReportConfigHolder) Get() ReportConfig {
	return h.current.Load().(ReportConfig)
}

// unmarshalReportConfig resolves key by key so a partial file still picks up
// defaults for the keys it omits.
func unmarshalReportConfig(v *viper.Viper) (ReportConfig, error) {
	cfg := normalizeReportConfig(ReportConfig{
		Title:        v.GetString("report.title"),
		FileName:     v.GetString("report.fileName"),
		TipsHeading:  v.GetString("report.tipsHeading"),
		Tips:         v.GetStringSlice("report.tips"),
		IncludeChart: v.GetBool("report.includeChart"),
	})
	if err := validateReportConfig(cfg); err != nil {
		return ReportConfig{}, err
	}
	return cfg, nil
}

func normalizeReportConfig(cfg ReportConfig) ReportConfig {
	cfg.Title = strings.TrimSpace(cfg.Title)
	cfg.FileName = strings.TrimSpace(cfg.FileName)
	cfg.TipsHeading = strings.TrimSpace(cfg.TipsHeading)

	tips := make([]string, 0, len(cfg.Tips))
	for _, tip := range cfg.Tips {
		tip = strings.TrimSpace(tip)
		if tip == "" {
			continue
		}
		tips = append(tips, tip)
	}
	cfg.Tips = tips
	return cfg
}

func validateReportConfig(cfg ReportConfig) error {
	if cfg.Title == "" {
		return errors.New("report.title cannot be empty")
	}
	if cfg.FileName == "" {
		return errors.New("report.fileName cannot be empty")
	}
	if !strings.HasSuffix(strings.ToLower(cfg.FileName), ".pdf") {
		return errors.New("report.fileName must end with .pdf")
	}
	if strings.ContainsAny(cfg.FileName, `/\"`) {
		return errors.New("report.fileName must be a bare file name")
	}
	return nil
}
