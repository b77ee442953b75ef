package geotime

import "github.com/megatih/GeoTimeZone/internal/service/solar"

// solarAnnotate is indirected so orchestrator tests can stub the
// astronomy out.
var solarAnnotate = solar.Annotate
