// Package api provides the REST API server for tabs2notes
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/james-see/tabs2notes/pkg/converter"
	"github.com/james-see/tabs2notes/pkg/converter/instruments"
	"github.com/james-see/tabs2notes/pkg/notes"
	"github.com/james-see/tabs2notes/pkg/tablature"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Tabs2Notes API
// @version 1.0
// @description API for converting guitar and bass tablature to note names and MIDI
// @host localhost:8080
// @BasePath /api/v1

// maxUploadSize bounds tablature uploads
const maxUploadSize = 4 << 20

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter(gin.Default()).Run(fmt.Sprintf(":%d", port))
}

// NewRouter registers every route on r and returns it
func NewRouter(r *gin.Engine) *gin.Engine {
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/instruments", listInstruments)
		v1.GET("/namings", listNamings)
		v1.GET("/formats", listFormats)
		v1.POST("/convert/tab2notes", handleTabToNotes)
		v1.POST("/convert/tab2midi", handleTabToMIDI)
		v1.GET("/notes/:name", handleNoteName)
		v1.GET("/pitches/:pitch", handlePitch)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tabs2notes",
	})
}

// listInstruments godoc
// @Summary List supported instruments
// @Description Returns the built-in instruments and their tunings
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]interface{}
// @Router /api/v1/instruments [get]
func listInstruments(c *gin.Context) {
	var list []gin.H
	for _, inst := range instruments.All() {
		list = append(list, gin.H{
			"id":      inst.ID(),
			"name":    inst.Name(),
			"strings": len(inst.Tuning()),
			"tuning":  inst.Tuning(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"instruments": list})
}

// listNamings godoc
// @Summary List naming languages
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/namings [get]
func listNamings(c *gin.Context) {
	var names []string
	for _, lang := range notes.Languages {
		names = append(names, lang.String())
	}
	c.JSON(http.StatusOK, gin.H{"namings": names})
}

// listFormats godoc
// @Summary List supported formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":     []string{"tab", "notes", "midi"},
		"conversions": converter.GetSupportedConversions(),
	})
}

// handleTabToNotes godoc
// @Summary Convert tablature to note names
// @Description Upload a tablature (multipart "file" or raw body) and receive note names
// @Tags convert
// @Accept multipart/form-data,text/plain
// @Produce json
// @Param file formData file false "Tablature file"
// @Param instrument query string false "Instrument (default: bass4)"
// @Param naming query string false "Naming language (default: latin)"
// @Param transpose query int false "Half-tone offset (default: 0)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/convert/tab2notes [post]
func handleTabToNotes(c *gin.Context) {
	conv, ok := converterFromQuery(c)
	if !ok {
		return
	}
	data, _, ok := readUpload(c)
	if !ok {
		return
	}

	res, err := conv.Notes(data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         uuid.NewString(),
		"instrument": res.Instrument,
		"naming":     res.Naming.String(),
		"transpose":  res.Transpose,
		"strings":    res.StringCount,
		"groups":     res.Groups,
		"lines":      res.Lines(),
	})
}

// handleTabToMIDI godoc
// @Summary Convert tablature to MIDI
// @Description Upload a tablature and receive a MIDI file, one quarter note per chord
// @Tags convert
// @Accept multipart/form-data,text/plain
// @Produce audio/midi
// @Param file formData file false "Tablature file"
// @Param instrument query string false "Instrument (default: bass4)"
// @Param transpose query int false "Half-tone offset (default: 0)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/convert/tab2midi [post]
func handleTabToMIDI(c *gin.Context) {
	conv, ok := converterFromQuery(c)
	if !ok {
		return
	}
	data, filename, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := conv.TabToMIDI(data)
	if err != nil {
		respondError(c, err)
		return
	}

	outputName := "converted.mid"
	if filename != "" {
		outputName = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".mid"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName))
	c.Header("X-Conversion-Id", uuid.NewString())
	c.Data(http.StatusOK, "audio/midi", result)
}

// handleNoteName godoc
// @Summary Resolve a note name to its MIDI pitch
// @Tags notes
// @Produce json
// @Param name path string true "Note name, e.g. C5, Dis3, Sol#2"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/notes/{name} [get]
func handleNoteName(c *gin.Context) {
	name := c.Param("name")
	pitch, err := notes.NameToPitch(name)
	if err != nil {
		respondError(c, err)
		return
	}
	lang, _ := notes.DetectLanguage(name)
	c.JSON(http.StatusOK, gin.H{
		"name":   name,
		"naming": lang.String(),
		"pitch":  pitch,
	})
}

// handlePitch godoc
// @Summary Render a MIDI pitch as a note name
// @Tags notes
// @Produce json
// @Param pitch path int true "MIDI pitch (0-127)"
// @Param naming query string false "Naming language (default: latin)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/pitches/{pitch} [get]
func handlePitch(c *gin.Context) {
	pitch, err := notes.ParsePitch(c.Param("pitch"))
	if err != nil {
		respondError(c, err)
		return
	}
	lang, err := notes.ParseLanguage(c.DefaultQuery("naming", converter.DefaultNaming.String()))
	if err != nil {
		respondError(c, err)
		return
	}
	name, err := notes.PitchToName(pitch, lang)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pitch":  pitch,
		"naming": lang.String(),
		"name":   name,
	})
}

func converterFromQuery(c *gin.Context) (*converter.Converter, bool) {
	inst, err := instruments.Lookup(c.DefaultQuery("instrument", instruments.Bass4ID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "unknown_instrument"})
		return nil, false
	}
	lang, err := notes.ParseLanguage(c.DefaultQuery("naming", converter.DefaultNaming.String()))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	transpose, err := strconv.Atoi(c.DefaultQuery("transpose", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transpose must be an integer", "kind": "invalid_input_type"})
		return nil, false
	}
	return converter.New(inst, converter.WithNaming(lang), converter.WithTranspose(transpose)), true
}

// readUpload accepts a multipart "file" field or a raw request body
func readUpload(c *gin.Context) ([]byte, string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return nil, "", false
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return nil, "", false
		}
		return data, header.Filename, true
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return nil, "", false
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty tablature"})
		return nil, "", false
	}
	return data, "", true
}

// respondError maps error kinds to status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	switch {
	case errors.Is(err, tablature.ErrInconsistentStructure):
		status, kind = http.StatusUnprocessableEntity, "inconsistent_structure"
	case errors.Is(err, tablature.ErrInstrumentMismatch):
		status, kind = http.StatusUnprocessableEntity, "instrument_mismatch"
	case errors.Is(err, notes.ErrPitchOutOfRange):
		status, kind = http.StatusUnprocessableEntity, "pitch_out_of_range"
	case errors.Is(err, notes.ErrInvalidName):
		status, kind = http.StatusBadRequest, "invalid_note_name"
	case errors.Is(err, notes.ErrUnknownLanguage):
		status, kind = http.StatusBadRequest, "unknown_language"
	case errors.Is(err, notes.ErrInvalidInputType):
		status, kind = http.StatusBadRequest, "invalid_input_type"
	}

	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
