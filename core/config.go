package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (default) | TEST | QA | PROD
	Build    string

	AppName      string
	SecretKey    string
	SchoolCode   string // short code prefixed to every student code, e.g. "CB"
	AcademicYear string // e.g. "2025-26"; the year runs April through March
	DataFile     string // path to the school document
	WorkDir      string

	DefaultFromEmail mail.Address
	SendgridApiKey   string
	RollbarToken     string

	Server struct {
		Host                      string
		Addr                      string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Darasa")
	v.SetDefault("secretKey", "w#4q0y^-h@$yf)5s&ret8+v6bmzch1(k7_xj2!dnp9*eugl3oa")
	v.SetDefault("schoolCode", "CB")
	v.SetDefault("academicYear", defaultAcademicYear(time.Now()))
	v.SetDefault("dataFile", filepath.Join("data", "school.json"))
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("port", "8000")
	v.SetDefault("debugHost", "0.0.0.0:4000")
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	v.SetDefault("testMode", env == "TEST")
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		SecretKey:    v.GetString("secretKey"),
		SchoolCode:   strings.ToUpper(v.GetString("schoolCode")),
		AcademicYear: v.GetString("academicYear"),
		DataFile:     v.GetString("dataFile"),
		WorkDir:      wd,
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("appName"),
			Address: v.GetString("defaultFromEmail"),
		},
		SendgridApiKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Addr = ":" + v.GetString("port")
	conf.Server.DebugHost = v.GetString("debugHost")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Server.JWTRefreshExpirationDelta = v.GetDuration("jwtRefreshExpirationDelta")

	// fail fast on a malformed academicYear instead of on the first
	// student registration
	if _, err := academicYearStart(conf.AcademicYear); err != nil {
		log.Fatalf("config: %v", err)
	}
	return conf
}

// CodePrefix is the leading token of every student code: the school code
// followed by the 2-digit start year of the academic year, e.g. "CB25".
func (c *Config) CodePrefix() string {
	return fmt.Sprintf("%s%02d", c.SchoolCode, c.startYear()%100)
}

// YearWindow returns the [start, end) bounds of the academic year:
// April 1st of the start year through April 1st of the next.
func (c *Config) YearWindow() (time.Time, time.Time) {
	start := time.Date(c.startYear(), time.April, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func (c *Config) startYear() int {
	yr, err := academicYearStart(c.AcademicYear)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return yr
}

// academicYearStart parses the 4-digit start year off an academic year
// like "2025-26".
func academicYearStart(year string) (int, error) {
	yr := year
	if i := strings.Index(yr, "-"); i > 0 {
		yr = yr[:i]
	}
	t, err := time.Parse("2006", yr)
	if err != nil {
		return 0, fmt.Errorf("bad academicYear %q: %v", year, err)
	}
	return t.Year(), nil
}

func defaultAcademicYear(now time.Time) string {
	start := now.Year()
	if now.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
