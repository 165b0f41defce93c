package rest

const (
	// positions
	RoutePositions = "/positions"
	RoutePosition  = RoutePositions + "/:id"

	// cloud storage
	RouteFiles        = "/files"
	RouteMyFiles      = RouteFiles + "/my-files"
	RouteStorageStats = RouteFiles + "/storage-stats"
	RouteUpload       = RouteFiles + "/upload"
	RouteFolders      = RouteFiles + "/folders"
	RouteFolder       = RouteFolders + "/:id"
	RouteFile         = RouteFiles + "/:id"
	RouteDownload     = RouteFiles + "/download/:id"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
