package rest

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storage-api/internal/application/ports"
	"storage-api/internal/application/services"
	"storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
	"storage-api/internal/infrastructure/jwt"
	"storage-api/internal/interface/api/rest/dto/storage"
	"storage-api/internal/interface/api/rest/middleware"
	"storage-api/internal/interface/api/rest/validator"
)

// room for the multipart envelope and the folderId field
const multipartOverhead = int64(1 << 20)

type StorageController struct {
	storage   ports.StorageFacade
	logger    *zap.Logger
	maxUpload int64
}

func NewStorageController(
	r *gin.Engine,
	storageFacade ports.StorageFacade,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxUpload int64,
) *StorageController {
	sc := &StorageController{
		storage:   storageFacade,
		logger:    logger,
		maxUpload: maxUpload,
	}

	auth := middleware.AuthMiddleware(jwtService)
	r.GET(RouteMyFiles, auth, sc.MyFilesHandler)
	r.GET(RouteStorageStats, auth, sc.StorageStatsHandler)
	r.POST(RouteUpload, auth, sc.UploadHandler)
	r.POST(RouteFolders, auth, sc.CreateFolderHandler)
	r.DELETE(RouteFile, auth, sc.DeleteFileHandler)
	r.DELETE(RouteFolder, auth, sc.DeleteFolderHandler)
	r.GET(RouteDownload, auth, sc.DownloadHandler)

	return sc
}

func (sc *StorageController) MyFilesHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}
	folderID, err := validator.ParseOptionalID(c.Query("folderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folderId must be a positive integer"})
		return
	}

	files, folders, err := sc.storage.MyFiles(c.Request.Context(), userID, toFolderID(folderID))
	if err != nil {
		respondError(c, sc.logger, "MyFiles()", "failed to get files", err)
		return
	}

	c.JSON(http.StatusOK, storage.ToResponseMyFiles(files, folders))
}

func (sc *StorageController) StorageStatsHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	report, err := sc.storage.StorageStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, sc.logger, "StorageStats()", "failed to get storage stats", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (sc *StorageController) UploadHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, sc.maxUpload+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoFile.Error()})
		return
	}
	if fh.Size <= 0 || fh.Size > sc.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty"})
		return
	}

	folderID, err := validator.ParseOptionalID(c.PostForm("folderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folderId must be a positive integer"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoFile.Error()})
		return
	}
	defer src.Close()

	f, err := sc.storage.Upload(c.Request.Context(), userID, &ports.UploadInput{
		Body:         src,
		Size:         fh.Size,
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		FolderID:     toFolderID(folderID),
	})
	if err != nil {
		respondError(c, sc.logger, "Upload()", "failed to upload file", err)
		return
	}

	c.JSON(http.StatusCreated, storage.ToResponseFile(*f))
}

func (sc *StorageController) CreateFolderHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	var req storage.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	name, err := validator.ValidateFolderName(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ParentID != nil && *req.ParentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parentId must be a positive integer"})
		return
	}

	f, err := sc.storage.CreateFolder(c.Request.Context(), userID, name, toFolderID(req.ParentID))
	if err != nil {
		respondError(c, sc.logger, "CreateFolder()", "failed to create folder", err)
		return
	}

	c.JSON(http.StatusCreated, storage.ToResponseFolder(*f))
}

func (sc *StorageController) DeleteFileHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = sc.storage.DeleteFile(c.Request.Context(), userID, file.ID(id)); err != nil {
		respondError(c, sc.logger, "DeleteFile()", "failed to delete file", err)
		return
	}

	c.JSON(http.StatusOK, storage.Message{Message: "File deleted successfully"})
}

func (sc *StorageController) DeleteFolderHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = sc.storage.DeleteFolder(c.Request.Context(), userID, folder.ID(id)); err != nil {
		respondError(c, sc.logger, "DeleteFolder()", "failed to delete folder", err)
		return
	}

	c.JSON(http.StatusOK, storage.Message{Message: "Folder deleted successfully"})
}

// DownloadHandler relays the blob to the client. A failed write stops the
// copy and the deferred Close releases the upstream reader.
func (sc *StorageController) DownloadHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, rc, err := sc.storage.Download(c.Request.Context(), userID, file.ID(id))
	if err != nil {
		respondError(c, sc.logger, "Download()", "failed to download file", err)
		return
	}
	defer rc.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": f.OriginalName})
	if disposition == "" {
		disposition = "attachment"
	}

	c.Header("Content-Type", f.MimeType)
	c.Header("Content-Disposition", disposition)
	c.Header("Content-Length", strconv.FormatInt(f.SizeBytes, 10))
	c.Status(http.StatusOK)

	if _, err = io.Copy(c.Writer, rc); err != nil {
		sc.logger.Warn("download relay aborted",
			zap.Int64("file_id", int64(f.ID)),
			zap.Error(err),
		)
	}
}

func toFolderID(id *int64) *folder.ID {
	if id == nil {
		return nil
	}
	v := folder.ID(*id)
	return &v
}
