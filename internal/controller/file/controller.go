// Package file provides HTTP handlers for file-related operations.
package file

import (
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"

	"actualize-backend/internal/model"
	"actualize-backend/internal/upload"
	"actualize-backend/internal/utilities"
)

// FileController handles file related endpoints
type FileController struct {
	Files *upload.DatabaseStorage
}

// NewFileController creates a new instance of FileController
func NewFileController(files *upload.DatabaseStorage) *FileController {
	return &FileController{
		Files: files,
	}
}

// GetFile function retrieves a file from the database and sends it as a downloadable attachment in
// the response.
// @Summary Retrieve dowloadable attachment
// @Tags File
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of wanted file"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 400 {object} utilities.ErrorResponse "Invalid file id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Given file id not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /files/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid file id"})
		return
	}

	file, err := fc.Files.Get(c.Request.Context(), uint(id))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	writeFileResponse(c, file)
}

func writeFileResponse(c *gin.Context, file *model.File) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+path.Base(file.ObjectName))
	c.Writer.Header().Set("Content-Type", contentType)
	c.Writer.Header().Set("Content-Length", fmt.Sprint(len(file.Content)))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(file.Content); err != nil {
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to send file content",
			})
		} else {
			c.Abort()
		}
	}
}
