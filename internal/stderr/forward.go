package stderr

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"
)

// forward logs every non-blank line read from r until EOF.
func forward(r io.Reader, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			logger.Warn("captured stderr", zap.String("line", line))
		}
	}
}
