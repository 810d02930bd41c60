package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// AzureAD holds the client-credentials material for Entra ID. All fields
// are optional: missing credentials put the gateway in sample-data mode.
type AzureAD struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Authority    string
}

// Configured reports whether a token can be requested at all.
func (a AzureAD) Configured() bool {
	return a.TenantID != "" && a.ClientID != "" && a.ClientSecret != ""
}

// BusinessCentral holds the API addressing parameters.
type BusinessCentral struct {
	Environment string
	CompanyID   string
	BaseURL     string
}

// Config is the full gateway configuration, read once at startup.
type Config struct {
	AzureAD  AzureAD
	BC       BusinessCentral
	HTTPAddr string
	DataDir  string
}

// Authenticated is the single signal the adapter routes on: true only when
// both the Azure AD credentials and the target company are known.
func (c Config) Authenticated() bool {
	return c.AzureAD.Configured() && c.BC.CompanyID != ""
}

// Load reads configuration from the environment. Callers are expected to
// have run godotenv beforehand. Missing credentials are not an error;
// they are logged once and the gateway serves sample data.
func Load(log *logrus.Entry) Config {
	azure := AzureAD{
		TenantID:     os.Getenv("AZURE_TENANT_ID"),
		ClientID:     os.Getenv("AZURE_CLIENT_ID"),
		ClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
	}
	if azure.Authority == "" && azure.TenantID != "" {
		azure.Authority = "https://login.microsoftonline.com/" + azure.TenantID
	}

	bc := BusinessCentral{
		Environment: envOr("BC_ENVIRONMENT", "production"),
		CompanyID:   os.Getenv("BC_COMPANY_ID"),
		BaseURL:     strings.TrimSuffix(os.Getenv("BC_BASE_URL"), "/"),
	}
	if bc.BaseURL == "" && azure.TenantID != "" {
		bc.BaseURL = fmt.Sprintf(
			"https://api.businesscentral.dynamics.com/v2.0/%s/%s/api/v2.0",
			azure.TenantID, bc.Environment,
		)
	}

	cfg := Config{
		AzureAD:  azure,
		BC:       bc,
		HTTPAddr: envOr("MCP_HTTP_ADDR", ":3333"),
		DataDir:  envOr("BC_DATA_DIR", "data"),
	}

	if log != nil {
		if missing := missingCredentials(azure, bc); len(missing) > 0 {
			log.Infof("credentials not configured (%s); serving sample data", strings.Join(missing, ", "))
		} else {
			log.Infof("Business Central configured: environment=%s company=%s", bc.Environment, bc.CompanyID)
		}
	}
	return cfg
}

func missingCredentials(azure AzureAD, bc BusinessCentral) []string {
	var missing []string
	for _, v := range []struct{ name, value string }{
		{"AZURE_TENANT_ID", azure.TenantID},
		{"AZURE_CLIENT_ID", azure.ClientID},
		{"AZURE_CLIENT_SECRET", azure.ClientSecret},
		{"BC_COMPANY_ID", bc.CompanyID},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
