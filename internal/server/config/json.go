package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/stevegmedia/voxceleris/internal/flagx"
	"github.com/stevegmedia/voxceleris/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. Interval fields use timex.Duration so both string
// values ("24h") and integer nanoseconds parse. After unmarshalling, the
// fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	TokenValidityDuration   timex.Duration `json:"token_validity_duration"`
	SiteURL                 string         `json:"site_url"`
	SiteName                string         `json:"site_name"`
	SMTPHost                string         `json:"smtp_host"`
	SMTPPort                int            `json:"smtp_port"`
	SMTPUser                string         `json:"smtp_user"`
	SMTPPassword            string         `json:"smtp_password"`
	EmailFrom               string         `json:"email_from"`
	PhotoStorage            string         `json:"photo_storage"`
	UploadDir               string         `json:"upload_dir"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags;
// when neither is set, no JSON file is loaded. An unreadable or invalid
// file panics, since the operator explicitly asked for it.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.SiteURL = c.SiteURL
	config.SiteName = c.SiteName
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.EmailFrom = c.EmailFrom
	config.PhotoStorage = c.PhotoStorage
	config.UploadDir = c.UploadDir
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
