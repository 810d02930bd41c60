package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET",
		"BC_ENVIRONMENT", "BC_COMPANY_ID", "BC_BASE_URL",
		"MCP_HTTP_ADDR", "BC_DATA_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultsToSampleMode(t *testing.T) {
	clearEnv(t)

	cfg := Load(nil)
	if cfg.Authenticated() {
		t.Fatalf("expected unauthenticated config")
	}
	if cfg.BC.Environment != "production" {
		t.Fatalf("expected production environment, got %s", cfg.BC.Environment)
	}
	if cfg.HTTPAddr != ":3333" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("unexpected data dir: %s", cfg.DataDir)
	}
}

func TestLoadDerivesURLs(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_TENANT_ID", "tenant-1")
	t.Setenv("AZURE_CLIENT_ID", "client-1")
	t.Setenv("AZURE_CLIENT_SECRET", "secret-1")
	t.Setenv("BC_ENVIRONMENT", "sandbox")
	t.Setenv("BC_COMPANY_ID", "company-1")

	cfg := Load(nil)
	if !cfg.Authenticated() {
		t.Fatalf("expected authenticated config")
	}
	wantBase := "https://api.businesscentral.dynamics.com/v2.0/tenant-1/sandbox/api/v2.0"
	if cfg.BC.BaseURL != wantBase {
		t.Fatalf("base url mismatch: %s", cfg.BC.BaseURL)
	}
	wantAuthority := "https://login.microsoftonline.com/tenant-1"
	if cfg.AzureAD.Authority != wantAuthority {
		t.Fatalf("authority mismatch: %s", cfg.AzureAD.Authority)
	}
}

func TestLoadBaseURLOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_TENANT_ID", "tenant-1")
	t.Setenv("BC_BASE_URL", "https://bc.example.test/api/v2.0/")

	cfg := Load(nil)
	if cfg.BC.BaseURL != "https://bc.example.test/api/v2.0" {
		t.Fatalf("override not honored: %s", cfg.BC.BaseURL)
	}
}

func TestPartialCredentialsStayUnauthenticated(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_TENANT_ID", "tenant-1")
	t.Setenv("AZURE_CLIENT_ID", "client-1")
	t.Setenv("AZURE_CLIENT_SECRET", "secret-1")
	// BC_COMPANY_ID still missing.

	cfg := Load(nil)
	if cfg.Authenticated() {
		t.Fatalf("company id missing, expected unauthenticated")
	}
}
