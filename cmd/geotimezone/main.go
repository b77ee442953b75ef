// Package main is the entry point for the GeoTimeZone service.
//
// GeoTimeZone is an HTTP service answering four related questions about a
// point on Earth at a moment in time: which civil time zone applies there,
// which UTC instant a local wall-clock reading corresponds to, where a
// place name resolves to, and which populated place best describes a
// coordinate. Over oceans, where no zone or place applies, a natural zone
// is synthesised from longitude alone.
//
// # Architecture
//
//	main.go (entry point)
//	    └── server.Server (HTTP shell)
//	            └── geotime.Service (orchestrators)
//	                    ├── store.Store (transition + toponym tables, MySQL)
//	                    ├── tzdata.Resolver (period assembly, DST policy)
//	                    ├── tzlookup (offline boundary index)
//	                    ├── geonames.Client (remote geocoding, disk-cached)
//	                    └── solar (sun annotations)
//
// Configuration comes from the environment with CLI flags overriding; see
// internal/config.
package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/megatih/GeoTimeZone/internal/config"
	"github.com/megatih/GeoTimeZone/internal/server"
	"github.com/megatih/GeoTimeZone/internal/service/geonames"
	"github.com/megatih/GeoTimeZone/internal/service/geotime"
	"github.com/megatih/GeoTimeZone/internal/service/tzdata"
	"github.com/megatih/GeoTimeZone/internal/store"
)

func main() {
	host := pflag.String("host", "", "MySQL/MariaDB host")
	port := pflag.IntP("port", "P", 0, "MySQL/MariaDB port")
	dbName := pflag.StringP("db", "d", "", "MySQL/MariaDB database name")
	user := pflag.StringP("user", "u", "", "MySQL/MariaDB user name")
	pass := pflag.StringP("pass", "p", "", "MySQL/MariaDB password")
	geoname := pflag.StringP("geoname", "g", "", "Geonames user name")
	webPort := pflag.IntP("webport", "w", 0, "HTTP service port")
	radius := pflag.Float64P("radius", "r", 0, "max nearby search radius in km")
	pflag.Parse()

	cfg := config.New()
	config.OverrideString(&cfg.DbHost, *host)
	config.OverrideInt(&cfg.DbPort, *port)
	config.OverrideString(&cfg.DbName, *dbName)
	config.OverrideString(&cfg.DbUser, *user)
	config.OverrideString(&cfg.DbPass, *pass)
	config.OverrideString(&cfg.GeonamesUser, *geoname)
	config.OverrideInt(&cfg.WebPort, *webPort)
	config.OverrideFloat(&cfg.MaxNearbyRadius, *radius)

	db, err := store.New(cfg)
	if err != nil {
		cfg.Logger.Error("failed to open database pool", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	resolver := tzdata.NewResolver(db, cfg.Logger)
	client := geonames.New(cfg)
	svc := geotime.New(db, client, resolver, cfg.Logger)

	srv := server.New(cfg, svc, resolver)
	if err := srv.ListenAndServe(); err != nil {
		cfg.Logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
