package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"semoir"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "semoir", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"semoir","extra":1}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": "17"})
	id, err := PathID(req, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": "abc"})
	_, err = PathID(req, "bookingId")
	assert.Error(t, err)
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?serviceId=4&available=true&from=2026-03-01&search=tracteur", nil)

	serviceID, err := QueryInt64(req, "serviceId")
	require.NoError(t, err)
	require.NotNil(t, serviceID)
	assert.Equal(t, int64(4), *serviceID)

	available, err := QueryBool(req, "available")
	require.NoError(t, err)
	require.NotNil(t, available)
	assert.True(t, *available)

	from, err := QueryDate(req, "from")
	require.NoError(t, err)
	assert.Equal(t, types.Date("2026-03-01"), from)

	to, err := QueryDate(req, "to")
	require.NoError(t, err)
	assert.True(t, to.IsZero())

	assert.Equal(t, "tracteur", *QueryString(req, "search"))
	assert.Nil(t, QueryString(req, "category"))

	bad := httptest.NewRequest(http.MethodGet, "/?from=01/03/2026&serviceId=x", nil)
	_, err = QueryDate(bad, "from")
	assert.Error(t, err)
	_, err = QueryInt64(bad, "serviceId")
	assert.Error(t, err)
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "Service introuvable.")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Service introuvable."}`, rec.Body.String())
}
