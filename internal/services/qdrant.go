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

// GuideRetriever finds interview-guide material similar to an interview
// context. Guides are tagged with the interview type they apply to.
type GuideRetriever interface {
	InitCollection() error
	UpsertGuideChunk(ctx context.Context, guideID, interviewType, text string, embedding []float32) error
	SearchGuides(ctx context.Context, queryEmbedding []float32, interviewType string, limit int) ([]GuideChunk, error)
}

type GuideChunk struct {
	ID            string
	Score         float32
	Text          string
	InterviewType string
}

type qdrantGuideStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantGuideStore(urlStr, apiKey, collectionName string) (GuideRetriever, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
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

	return &qdrantGuideStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements GuideRetriever.
func (q *qdrantGuideStore) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		log.Println("✅ Guide collection already exists")
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

// UpsertGuideChunk implements GuideRetriever.
func (q *qdrantGuideStore) UpsertGuideChunk(ctx context.Context, guideID, interviewType, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"guide_id":       guideID,
			"interview_type": interviewType,
			"text":           text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert guide chunk: %w", err)
	}

	return nil
}

// SearchGuides implements GuideRetriever.
func (q *qdrantGuideStore) SearchGuides(ctx context.Context, queryEmbedding []float32, interviewType string, limit int) ([]GuideChunk, error) {
	var filter *qdrant.Filter
	if interviewType != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("interview_type", interviewType),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search guides: %w", err)
	}

	var chunks []GuideChunk
	for _, point := range searchResult {
		chunk := GuideChunk{Score: point.Score}

		if v, ok := point.Payload["guide_id"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.ID = s.StringValue
			}
		}
		if v, ok := point.Payload["text"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.Text = s.StringValue
			}
		}
		if v, ok := point.Payload["interview_type"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.InterviewType = s.StringValue
			}
		}

		chunks = append(chunks, chunk)
	}

	return chunks, nil
}
