package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port string

	// Data source: "file" (default) or "sftp"
	Source   string
	DataFile string

	// SFTP source
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPFile                  string
	SFTPKnownHosts            string
	SFTPInsecureIgnoreHostKey bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; a missing one is
// not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getenv("PORT", "3000"),

		Source:   getenv("OFFERS_SOURCE", "file"),
		DataFile: os.Getenv("OFFERS_DATA_FILE"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/"),
		SFTPFile:                  getenv("SFTP_FILE", "data.json"),
		SFTPKnownHosts:            os.Getenv("SFTP_KNOWN_HOSTS"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
