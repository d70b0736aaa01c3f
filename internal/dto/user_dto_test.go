package dto

import (
	"testing"

	"backoffice/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSecurityLogResponsesFromEntities(t *testing.T) {
	logs := []entity.SecurityLog{
		{ID: uuid.New(), Action: entity.UserUpdated, Metadata: datatypes.JSON(`{"verified":true}`)},
		{ID: uuid.New(), Action: entity.UserDeleted},
	}

	responses, err := SecurityLogResponsesFromEntities(logs)

	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, map[string]any{"verified": true}, responses[0].Metadata)
	assert.Nil(t, responses[1].Metadata)
}

func TestSecurityLogResponsesFromEntities_CorruptMetadata(t *testing.T) {
	id := uuid.New()
	logs := []entity.SecurityLog{{ID: id, Action: entity.UserUpdated, Metadata: datatypes.JSON(`{"verified":`)}}

	responses, err := SecurityLogResponsesFromEntities(logs)

	assert.Nil(t, responses)
	assert.ErrorContains(t, err, id.String())
}
