package main

import (
	"os"

	"github.com/MKhiriev/go-waste-sync/internal/client"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	for _, v := range []*string{&buildVersion, &buildDate, &buildCommit} {
		if *v == "" {
			*v = "N/A"
		}
	}

	opts := &client.RootOptions{
		BuildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		Logger:    logger.NewClientLogger("waste-sync-client"),
	}

	os.Exit(client.Execute(opts, os.Args[1:], os.Stdout, os.Stderr))
}
