package riskmodel

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// modelBlob is the opaque persisted form: standardizer + ensemble + flag.
type modelBlob struct {
	Scaler  *Standardizer
	Model   *Ensemble
	Trained bool
}

// Save persists the fitted model. The blob is written to a temp file in the
// target directory and renamed into place, so a concurrent Load never sees
// a partial write.
func (p *Predictor) Save(path string) error {
	p.mu.RLock()
	blob := modelBlob{Scaler: p.scaler, Model: p.model, Trained: p.trained}
	p.mu.RUnlock()

	if !blob.Trained {
		return errors.New("model not trained")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".risk_model-*")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("encode model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load restores a persisted model. A missing file returns (false, nil) and
// leaves the predictor in its prior state, trained or not.
func (p *Predictor) Load(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	var blob modelBlob
	if err := gob.NewDecoder(f).Decode(&blob); err != nil {
		return false, fmt.Errorf("decode model: %w", err)
	}

	p.mu.Lock()
	p.scaler = blob.Scaler
	p.model = blob.Model
	p.trained = blob.Trained
	p.mu.Unlock()
	return true, nil
}
