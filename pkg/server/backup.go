package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tableflip.dev/planner/pkg/backup"
)

// Export GET /api/export/:year streams the year as a zip download.
func (h *Handler) Export(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "year must be a number")
		return
	}
	files, err := h.store.GetSpecificYearDataForSave(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := backup.Write(&buf, files); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+backup.FileName(year)+`"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// Import POST /api/import accepts a zip as the multipart field "file" or as
// the raw body. The year comes from ?year=, the uploaded file name or the
// documents inside. A malformed archive is a 400 and leaves the state as it
// was.
func (h *Handler) Import(c *gin.Context) {
	data, name, err := readUpload(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	files, err := backup.ReadBytes(data)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var year int
	if q := c.Query("year"); q != "" {
		if year, err = strconv.Atoi(q); err != nil {
			badRequest(c, "year must be a number")
			return
		}
	} else if year, err = backup.YearFromFileName(name); err != nil {
		if year, err = backup.DetectYear(files); err != nil {
			writeError(c, err)
			return
		}
	}

	if err := h.store.LoadYearFromBackup(year, files); err != nil {
		writeError(c, err)
		return
	}
	h.commit(c, http.StatusOK, gin.H{"year": year, "files": len(files)})
}

func readUpload(c *gin.Context) ([]byte, string, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxUpload))
		return data, fh.Filename, err
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUpload))
	return data, c.Query("name"), err
}

const maxUpload = 64 << 20
