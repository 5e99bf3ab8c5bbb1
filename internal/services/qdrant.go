package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type VectorStore interface {
	InitCollection(ctx context.Context) error
	UpsertResumeChunks(ctx context.Context, chunks []ResumeChunk) error
	SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeHit, error)
	DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error
}

// ResumeChunk is one embedded slice of a candidate's resume.
type ResumeChunk struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
	Index       int
	Text        string
	Embedding   []float32
}

type ResumeHit struct {
	CandidateID uuid.UUID
	Score       float32
	Text        string
}

type qdrantStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantStore(urlStr, apiKey, collectionName string) (VectorStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// The go client speaks gRPC, default port 6334
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
	}, nil
}

// InitCollection implements VectorStore.
func (q *qdrantStore) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists\n", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertResumeChunks implements VectorStore.
func (q *qdrantStore) UpsertResumeChunks(ctx context.Context, chunks []ResumeChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for _, chunk := range chunks {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(chunkPointID(chunk.CandidateID, chunk.Index).String()),
			Vectors: qdrant.NewVectors(chunk.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"candidate_id": chunk.CandidateID.String(),
				"job_id":       chunk.JobID.String(),
				"chunk":        chunk.Index,
				"text":         chunk.Text,
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert resume chunks: %w", err)
	}

	return nil
}

// SearchResumes implements VectorStore.
func (q *qdrantStore) SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeHit, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search resumes: %w", err)
	}

	hits := make([]ResumeHit, 0, len(points))
	for _, point := range points {
		hit := ResumeHit{Score: point.Score}

		if v, ok := point.Payload["candidate_id"]; ok {
			if id, err := uuid.Parse(v.GetStringValue()); err == nil {
				hit.CandidateID = id
			}
		}
		if v, ok := point.Payload["text"]; ok {
			hit.Text = v.GetStringValue()
		}

		if hit.CandidateID == uuid.Nil {
			continue
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

// DeleteCandidate implements VectorStore.
func (q *qdrantStore) DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch("candidate_id", candidateID.String()),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume chunks: %w", err)
	}

	return nil
}

// chunkPointID is stable per (candidate, chunk) so re-indexing overwrites points.
func chunkPointID(candidateID uuid.UUID, index int) uuid.UUID {
	return uuid.NewSHA1(candidateID, []byte("chunk-"+strconv.Itoa(index)))
}
