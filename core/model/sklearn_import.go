package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ezoic/splitcheck/pkg/errors"
)

// FormatVersion is the only interchange format version understood by this package.
const FormatVersion = "1.0"

// SKLearnModelSpec is the metadata block of an exported model.
type SKLearnModelSpec struct {
	Name           string `json:"name"`                      // e.g. "LinearRegression"
	FormatVersion  string `json:"format_version"`            // always FormatVersion
	SKLearnVersion string `json:"sklearn_version,omitempty"` // set by the Python exporter
}

// SKLearnLinearRegressionParams holds the learned parameters of a linear model.
// Rank is the effective rank of the centred design matrix; it is optional
// in files produced by the Python exporter.
type SKLearnLinearRegressionParams struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	NFeatures    int       `json:"n_features"`
	Rank         int       `json:"rank,omitempty"`
}

// SKLearnModel is the JSON envelope: metadata plus model-specific params.
type SKLearnModel struct {
	ModelSpec SKLearnModelSpec `json:"model_spec"`
	Params    json.RawMessage  `json:"params"`
}

// LoadSKLearnModelFromFile reads a model envelope from a JSON file.
//
//	m, err := model.LoadSKLearnModelFromFile("sklearn_model.json")
//	if err != nil {
//	    return err
//	}
func LoadSKLearnModelFromFile(filename string) (*SKLearnModel, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file %s", filename)
	}
	defer func() { _ = file.Close() }()

	return LoadSKLearnModelFromReader(file)
}

// LoadSKLearnModelFromReader decodes and validates a model envelope.
func LoadSKLearnModelFromReader(r io.Reader) (*SKLearnModel, error) {
	var m SKLearnModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode JSON")
	}

	if m.ModelSpec.FormatVersion == "" {
		return nil, errors.NewValueError("LoadSKLearnModel", "format_version is required")
	}
	if m.ModelSpec.FormatVersion != FormatVersion {
		return nil, errors.NewValueError("LoadSKLearnModel",
			fmt.Sprintf("unsupported format version: %s", m.ModelSpec.FormatVersion))
	}
	if m.ModelSpec.Name == "" {
		return nil, errors.NewValueError("LoadSKLearnModel", "model name is required")
	}

	return &m, nil
}

// LoadLinearRegressionParams extracts and validates LinearRegression params.
func LoadLinearRegressionParams(m *SKLearnModel) (*SKLearnLinearRegressionParams, error) {
	if m.ModelSpec.Name != "LinearRegression" {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			fmt.Sprintf("expected LinearRegression, got %s", m.ModelSpec.Name))
	}

	var params SKLearnLinearRegressionParams
	if err := json.Unmarshal(m.Params, &params); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal params")
	}

	if len(params.Coefficients) == 0 {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			"coefficients cannot be empty")
	}
	if params.NFeatures != len(params.Coefficients) {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			fmt.Sprintf("n_features (%d) does not match coefficients length (%d)",
				params.NFeatures, len(params.Coefficients)))
	}

	return &params, nil
}

// ExportSKLearnModel writes params under modelName as indented JSON.
func ExportSKLearnModel(modelName string, params any, w io.Writer) error {
	m := SKLearnModel{
		ModelSpec: SKLearnModelSpec{
			Name:          modelName,
			FormatVersion: FormatVersion,
		},
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal params")
	}
	m.Params = paramsJSON

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&m); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}

	return nil
}
