package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porttariff/internal/domain"
)

func TestResultSet_KeepsInsertionOrder(t *testing.T) {
	rs := domain.NewResultSet()
	rs.Set("Port Dues", "ZAR 199,549.22")
	rs.Set("Light Dues", "ZAR 45,000.00")
	rs.Set("Towage Dues", "ZAR 12,000.00")

	assert.Equal(t, 3, rs.Len())
	assert.Equal(t, []string{"Port Dues", "Light Dues", "Towage Dues"}, rs.Names())
}

func TestResultSet_LastWriteWinsKeepsPosition(t *testing.T) {
	rs := domain.NewResultSet()
	rs.Set("Port Dues", "ZAR 1.00")
	rs.Set("Light Dues", "ZAR 2.00")
	rs.Set("Port Dues", "ZAR 3.00")

	amount, ok := rs.Get("Port Dues")
	require.True(t, ok)
	assert.Equal(t, "ZAR 3.00", amount)
	assert.Equal(t, []domain.ResultLine{
		{Name: "Port Dues", Amount: "ZAR 3.00"},
		{Name: "Light Dues", Amount: "ZAR 2.00"},
	}, rs.Lines())
}

func TestResultSet_ZeroValueAndNil(t *testing.T) {
	var zero domain.ResultSet
	zero.Set("VTS Dues", "ZAR 5.00")
	assert.Equal(t, 1, zero.Len())

	var nilSet *domain.ResultSet
	assert.Equal(t, 0, nilSet.Len())
	assert.Empty(t, nilSet.Names())
	assert.Empty(t, nilSet.Lines())
	_, ok := nilSet.Get("VTS Dues")
	assert.False(t, ok)
}

func TestResultSet_MarshalJSON_Ordered(t *testing.T) {
	rs := domain.NewResultSet()
	rs.Set("Port Dues", "ZAR 199,549.22")
	rs.Set("Light Dues", "ZAR 45,000.00")

	data, err := json.Marshal(map[string]*domain.ResultSet{"results": rs})
	require.NoError(t, err)
	assert.Equal(t, `{"results":{"Port Dues":"ZAR 199,549.22","Light Dues":"ZAR 45,000.00"}}`, string(data))
}

func TestResultSet_MarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(domain.NewResultSet())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
