package statsrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/repository/statsrepo"
)

func TestEstimatedCount_RejectsUnknownTable(t *testing.T) {
	repo := statsrepo.NewStatsRepository(nil, time.Second, logger.NewLogger("debug"))

	for _, table := range []string{"carts", "users; DROP TABLE users", ""} {
		_, err := repo.EstimatedCount(context.Background(), table)
		assert.IsType(t, &apperror.InternalError{}, err, table)
	}
}
