package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/saivenkat-burle/tsembed/internal/api"
	"github.com/saivenkat-burle/tsembed/internal/routing"
	"github.com/saivenkat-burle/tsembed/internal/service"
	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

func main() {
	host := readEnvDefault("THOUGHTSPOT_HOST", "https://ps-internal.thoughtspot.cloud")
	// absence of the secret is not a startup failure: issuance fails
	// upstream with a 401 instead, matching the rest of the error path
	secret := os.Getenv("THOUGHTSPOT_SECRET_KEY")
	account := readEnvVar("TS_SERVICE_ACCOUNT")
	orgID := readEnvDefault("TS_ORG_ID", "0")
	port := readEnvDefault("PORT", "3001")
	origins := strings.Split(
		readEnvDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"), ",")

	client := thoughtspot.New(host)
	svc := service.New(service.Config{
		SecretKey:      secret,
		ServiceAccount: account,
		OrgID:          orgID,
		CookieDomain:   client.Domain(),
		ABACUsername:   readEnvDefault("TS_ABAC_USERNAME", "whitelist"),
		ABACOrgID:      readEnvDefault("TS_ABAC_ORG_ID", "0"),
		DefaultBindings: []service.VariableBinding{
			{Name: "site_id_var", Values: []string{"S-101", "S-102"}},
		},
	}, client, client, client, client)

	r := routing.BuildRouter(api.New(svc), origins)

	log.Printf("serving on :%s for %s\n", port, host)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func readEnvVar(name string) string {
	str, present := os.LookupEnv(name)
	if !present {
		log.Fatalf("missing required env var '%s'\n", name)
	}
	return str
}

func readEnvDefault(name string, fallback string) string {
	if str, present := os.LookupEnv(name); present {
		return str
	}
	return fallback
}
