package document

import (
	"context"
	"errors"
	"time"

	"github.com/zatekoja/feedbacker/internal/domain/entities"
	"github.com/zatekoja/feedbacker/internal/domain/repositories"
	apperrors "github.com/zatekoja/feedbacker/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// documentValidationFailure is the server code for a $jsonSchema rejection.
const documentValidationFailure = 121

// feedbackDocument is the stored shape of a Feedback.
type feedbackDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *feedbackDocument) toEntity() *entities.Feedback {
	return &entities.Feedback{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// FeedbackAdapter implements feedback persistence in a MongoDB collection.
type FeedbackAdapter struct {
	collection *mongo.Collection
}

var _ repositories.FeedbackRepository = (*FeedbackAdapter)(nil)

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(collection *mongo.Collection) *FeedbackAdapter {
	return &FeedbackAdapter{collection: collection}
}

// EnsureIndexes creates the index backing the recency sort.
func (a *FeedbackAdapter) EnsureIndexes(ctx context.Context) error {
	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return apperrors.NewInternalError("failed to create feedback indexes", err)
	}
	return nil
}

// Create inserts a feedback document. An empty ID gets a fresh ObjectID.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", errors.New("feedback is nil"))
	}

	doc := feedbackDocument{
		Name:      feedback.Name,
		Message:   feedback.Message,
		CreatedAt: feedback.CreatedAt,
		UpdatedAt: feedback.UpdatedAt,
	}
	if feedback.ID != "" {
		oid, err := primitive.ObjectIDFromHex(feedback.ID)
		if err != nil {
			return apperrors.NewValidationError("invalid feedback id")
		}
		doc.ID = oid
	} else {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := a.collection.InsertOne(ctx, doc); err != nil {
		if isValidationFailure(err) {
			return apperrors.NewStoreValidationError("feedback failed validation", err)
		}
		return apperrors.NewInternalError("failed to create feedback", err)
	}

	feedback.ID = doc.ID.Hex()
	return nil
}

// ListByRecency returns all feedback, newest first.
func (a *FeedbackAdapter) ListByRecency(ctx context.Context) ([]*entities.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := a.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback", err)
	}
	defer cursor.Close(ctx)

	feedback := make([]*entities.Feedback, 0)
	for cursor.Next(ctx) {
		var doc feedbackDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.NewInternalError("failed to decode feedback", err)
		}
		feedback = append(feedback, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate feedback", err)
	}

	return feedback, nil
}

// DeleteByID removes a document by its hex ObjectID. A malformed id
// cannot name a stored document and reports false.
func (a *FeedbackAdapter) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := a.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, apperrors.NewInternalError("failed to delete feedback", err)
	}
	return result.DeletedCount > 0, nil
}

func isValidationFailure(err error) bool {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == documentValidationFailure {
				return true
			}
		}
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == documentValidationFailure
	}
	return false
}
