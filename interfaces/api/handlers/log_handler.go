package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"rsvp-backend/pkg/logger"
	"rsvp-backend/pkg/utils"
)

// LogHandler lets the admin read the category log files. Access is enforced
// by the AdminOnly middleware on the route group.
type LogHandler struct{}

func NewLogHandler() *LogHandler {
	return &LogHandler{}
}

// GetLogs returns log entries filtered by lines, level, category and search.
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	opts := logger.ReadLogsOptions{
		Lines:    c.QueryInt("lines", 100),
		Level:    logger.Level(c.Query("level")),
		Category: logger.Category(c.Query("category")),
		Search:   c.Query("search"),
	}

	entries, err := logger.ReadLogs(opts)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read logs", err)
	}

	return utils.SuccessResponse(c, "", fiber.Map{
		"entries": entries,
		"count":   len(entries),
		"filters": fiber.Map{
			"lines":    opts.Lines,
			"level":    opts.Level,
			"category": opts.Category,
			"search":   opts.Search,
		},
	})
}

func (h *LogHandler) GetLogFiles(c *fiber.Ctx) error {
	files, err := logger.ListLogFiles()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list log files", err)
	}

	return utils.SuccessResponse(c, "", fiber.Map{
		"files":  files,
		"logDir": logger.GetLogDir(),
	})
}

func (h *LogHandler) GetLogStats(c *fiber.Ctx) error {
	allLogs, _ := logger.ReadLogs(logger.ReadLogsOptions{Lines: 1000})

	levelCounts := map[string]int{
		"DEBUG": 0,
		"INFO":  0,
		"WARN":  0,
		"ERROR": 0,
	}
	categoryCounts := map[string]int{}

	for _, entry := range allLogs {
		levelCounts[string(entry.Level)]++
		categoryCounts[string(entry.Category)]++
	}

	var totalSize int64
	files, _ := logger.ListLogFiles()
	logDir := logger.GetLogDir()
	for _, f := range files {
		if info, err := os.Stat(filepath.Join(logDir, f)); err == nil {
			totalSize += info.Size()
		}
	}

	return utils.SuccessResponse(c, "", fiber.Map{
		"totalEntries":   len(allLogs),
		"byLevel":        levelCounts,
		"byCategory":     categoryCounts,
		"totalFiles":     len(files),
		"totalSizeBytes": totalSize,
	})
}
