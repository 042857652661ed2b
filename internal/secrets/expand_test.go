package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/claudius/internal/logging"
)

func TestExpandVariablesSimpleReference(t *testing.T) {
	variables := map[string]string{
		"CLAUDIUS_SECRET_BASE_URL": "https://api.example.com/$CLAUDIUS_SECRET_API_KEY",
	}
	external := map[string]string{
		"CLAUDIUS_SECRET_API_KEY": "secret123",
	}

	result, err := ExpandVariables(variables, external, logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/secret123", result["BASE_URL"])
}

func TestExpandVariablesMultipleReferences(t *testing.T) {
	variables := map[string]string{
		"CLAUDIUS_SECRET_URL": "https://$CLAUDIUS_SECRET_HOST:$CLAUDIUS_SECRET_PORT/api",
	}
	external := map[string]string{
		"CLAUDIUS_SECRET_HOST": "example.com",
		"CLAUDIUS_SECRET_PORT": "8080",
	}

	result, err := ExpandVariables(variables, external, logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:8080/api", result["URL"])
}

func TestExpandVariablesBracesSyntax(t *testing.T) {
	variables := map[string]string{
		"CLAUDIUS_SECRET_PATH": "${CLAUDIUS_SECRET_BASE}/data/${CLAUDIUS_SECRET_ID}",
	}
	external := map[string]string{
		"CLAUDIUS_SECRET_BASE": "/var/lib",
		"CLAUDIUS_SECRET_ID":   "12345",
	}

	result, err := ExpandVariables(variables, external, logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/data/12345", result["PATH"])
}

func TestExpandVariablesChainDependencies(t *testing.T) {
	variables := map[string]string{
		"CLAUDIUS_SECRET_A": "value_a",
		"CLAUDIUS_SECRET_B": "prefix_$CLAUDIUS_SECRET_A",
		"CLAUDIUS_SECRET_C": "$CLAUDIUS_SECRET_B-suffix",
	}

	result, err := ExpandVariables(variables, nil, logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, "value_a", result["A"])
	assert.Equal(t, "prefix_value_a", result["B"])
	assert.Equal(t, "prefix_value_a-suffix", result["C"])
}

func TestExpandVariablesComplexGraph(t *testing.T) {
	variables := map[string]string{
		"CLAUDIUS_SECRET_A": "a",
		"CLAUDIUS_SECRET_B": "$CLAUDIUS_SECRET_A-b",
		"CLAUDIUS_SECRET_C": "$CLAUDIUS_SECRET_A-c",
		"CLAUDIUS_SECRET_D": "$CLAUDIUS_SECRET_B-$CLAUDIUS_SECRET_C-d",
	}

	result, err := ExpandVariables(variables, nil, logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, "a-b-a-c-d", result["D"])
}

func TestExpandVariablesCircularDependency(t *testing.T) {
	variables := map[string]string{
		"CLAUDIUS_SECRET_A": "$CLAUDIUS_SECRET_B",
		"CLAUDIUS_SECRET_B": "$CLAUDIUS_SECRET_C",
		"CLAUDIUS_SECRET_C": "$CLAUDIUS_SECRET_A",
	}

	_, err := ExpandVariables(variables, nil, logging.ForTest(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Circular dependency")
}

func TestExpandVariablesUnresolvedReferenceKept(t *testing.T) {
	variables := map[string]string{
		"CLAUDIUS_SECRET_URL": "https://api.example.com/$CLAUDIUS_SECRET_UNKNOWN",
	}

	result, err := ExpandVariables(variables, nil, logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/$CLAUDIUS_SECRET_UNKNOWN", result["URL"])
}
