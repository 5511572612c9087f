package main

import (
	"fmt"
	"io"
	"os"

	"sentrepr/internal/config"
	"sentrepr/internal/domain"
	"sentrepr/internal/embedding/tfidf"
	"sentrepr/internal/logger"
	"sentrepr/internal/representation"
	"sentrepr/internal/resource"
)

// loadResources reads only the resource files the configured strategy needs.
func loadResources(cfg *config.AppConfig) (representation.Resources, error) {
	stopwords, err := cfg.Stopwords()
	if err != nil {
		return representation.Resources{}, err
	}
	res := representation.Resources{
		Lexical: tfidf.Options{
			Stopwords: stopwords,
			NgramMin:  cfg.Lexical.NgramMin,
			NgramMax:  cfg.Lexical.NgramMax,
		},
		Stopwords:         stopwords,
		MinTokens:         cfg.WordVectors.MinTokens,
		SmoothingConstant: cfg.WordVectors.Smoothing,
	}

	switch cfg.Strategy {
	case representation.NameBigram:
		vocab, proj, err := openWith(cfg.Bigram.ModelPath, "bigram.model_path", resource.LoadBigramModel)
		if err != nil {
			return res, err
		}
		res.Bigrams, res.Reducer = vocab, proj
		logger.Debug("bigram model: %d bigrams -> %d dimensions", len(vocab), proj.Dimension())
	case representation.NameSum, representation.NameMean, representation.NameWeighted, representation.NameSmoothed:
		vectors, err := open1(cfg.WordVectors.VectorsPath, "word_vectors.vectors_path", resource.LoadWordVectors)
		if err != nil {
			return res, err
		}
		res.Vectors = vectors
		logger.Debug("word vectors: %d terms, dimension %d", vectors.Len(), vectors.Dimension())
		if cfg.Strategy != representation.NameSmoothed {
			break
		}
		freq, err := open1(cfg.WordVectors.FrequenciesPath, "word_vectors.frequencies_path", resource.LoadFrequencies)
		if err != nil {
			return res, err
		}
		direction, err := open1(cfg.WordVectors.DirectionPath, "word_vectors.direction_path", resource.LoadDirection)
		if err != nil {
			return res, err
		}
		model, err := resource.NewSmoothingModel(vectors, freq, direction)
		if err != nil {
			return res, err
		}
		res.Smoothing = model
	}
	return res, nil
}

func open1[T any](path, key string, load func(r io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := openResource(path, key)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := load(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func openWith[A, B any](path, key string, load func(r io.Reader) (A, B, error)) (A, B, error) {
	var (
		zeroA A
		zeroB B
	)
	f, err := openResource(path, key)
	if err != nil {
		return zeroA, zeroB, err
	}
	defer f.Close()
	a, b, err := load(f)
	if err != nil {
		return zeroA, zeroB, fmt.Errorf("%s: %w", path, err)
	}
	return a, b, nil
}

func openResource(path, key string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: %s is not set", domain.ErrConfiguration, key)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfiguration, key, err)
	}
	return f, nil
}
