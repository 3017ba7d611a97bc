package models

import (
	"encoding/json"
	"testing"

	"github.com/gartstein/efportfolio/internal/pkg/utils"
	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("Active")
	assert.ErrorIs(t, err, e.ErrInvalidStatus, "status is case sensitive")
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, e.ErrInvalidStatus)
}

func TestCompanyUnmarshal_RejectsUnknownStatus(t *testing.T) {
	var c Company
	err := json.Unmarshal([]byte(`{"id":1,"name":"X","status":"bankrupt"}`), &c)
	assert.ErrorIs(t, err, e.ErrInvalidStatus)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"X","status":"acquired"}`), &c))
	assert.Equal(t, Acquired, c.Status)
	assert.Equal(t, "Acquired", c.Status.Label())
}

func TestFounderFullName(t *testing.T) {
	assert.Equal(t, "Ada", (&Founder{FirstName: "Ada"}).FullName())
	assert.Equal(t, "Ada", (&Founder{FirstName: "Ada", LastName: utils.Ptr("")}).FullName())
	assert.Equal(t, "Ada Lovelace", (&Founder{FirstName: "Ada", LastName: utils.Ptr("Lovelace")}).FullName())
}
