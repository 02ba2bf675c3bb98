package controller

import (
	"log"
	"net/http"

	"menu-price-map/service"
)

// AdminController handles dataset maintenance requests
type AdminController struct {
	datasets service.DatasetServiceInterface
	drive    service.DriveServiceInterface
	feedSync service.FeedSyncServiceInterface
	imports  *service.ImportService
}

// NewAdminController creates a new AdminController.
// drive, feedSync and imports may be nil when Google Drive or the database are not configured.
func NewAdminController(
	datasets service.DatasetServiceInterface,
	drive service.DriveServiceInterface,
	feedSync service.FeedSyncServiceInterface,
	imports *service.ImportService,
) *AdminController {
	return &AdminController{datasets: datasets, drive: drive, feedSync: feedSync, imports: imports}
}

// Reload handles POST /admin/datasets/reload?brand=
func (c *AdminController) Reload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	brand := r.URL.Query().Get("brand")
	if brand == "" {
		def, err := c.datasets.DefaultBrand()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		brand = def.ID
	}

	ds, err := c.datasets.Reload(r.Context(), brand)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds.Info())
}

// Feeds handles GET /admin/feeds?folderId=
// Lists the CSV and JSON feed files of a Google Drive folder
func (c *AdminController) Feeds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.drive == nil {
		http.Error(w, "Google Drive is not configured", http.StatusNotImplemented)
		return
	}
	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		http.Error(w, "folderId parameter is required", http.StatusBadRequest)
		return
	}

	files, err := c.drive.ListFeedFiles(r.Context(), folderID)
	if err != nil {
		log.Printf("❌ Feeds: folder=%s: %v", folderID, err)
		http.Error(w, "Failed to list feed files", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// SyncFeeds handles POST /admin/feeds/sync?folderId=&dest=
// Mirrors a Drive folder's feed files under the data directory
func (c *AdminController) SyncFeeds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.feedSync == nil {
		http.Error(w, "Google Drive is not configured", http.StatusNotImplemented)
		return
	}
	folderID := r.URL.Query().Get("folderId")
	dest := r.URL.Query().Get("dest")
	if folderID == "" || dest == "" {
		http.Error(w, "folderId and dest parameters are required", http.StatusBadRequest)
		return
	}

	result, err := c.feedSync.Mirror(r.Context(), folderID, dest)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Import handles POST /admin/datasets/import?brand=
// Copies the brand's menu feed into PostgreSQL
func (c *AdminController) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.imports == nil {
		http.Error(w, "Database is not configured", http.StatusNotImplemented)
		return
	}
	brand := r.URL.Query().Get("brand")
	if brand == "" {
		http.Error(w, "brand parameter is required", http.StatusBadRequest)
		return
	}

	result, err := c.imports.Import(r.Context(), brand)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
