package mongodb

import (
	// Go Internal Packages
	"context"
	stderrors "errors"
	"time"

	// Local Packages
	errors "notif-stream/errors"
	models "notif-stream/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	Client     *mongo.Client
	Database   string
	Collection string
}

func NewNotificationRepository(client *mongo.Client) *NotificationRepository {
	return &NotificationRepository{Client: client, Database: "ebank", Collection: "notifications"}
}

func (r *NotificationRepository) collection() *mongo.Collection {
	return r.Client.Database(r.Database).Collection(r.Collection)
}

// EnsureIndexes creates the unique index on notification_id. The index is
// what turns redelivered events into duplicate-key errors instead of
// duplicate notifications.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "notification_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.collection().Indexes().CreateOne(ctx, index)
	return err
}

// nextID hands out integer identities from the counters collection.
func (r *NotificationRepository) nextID(ctx context.Context) (int64, error) {
	counters := r.Client.Database(r.Database).Collection("counters")
	filter := bson.M{"_id": r.Collection}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// Create fills defaults, assigns an identity and inserts the notification.
// A collision on notification_id comes back as an Exist-kind error so the
// caller can treat it as an idempotent duplicate.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	notification.ApplyDefaults()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "failed to assign notification id", err)
	}
	notification.ID = id
	notification.CreatedAt = time.Now().UTC()

	if _, err := r.collection().InsertOne(ctx, notification); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.DuplicateNotificationErr(notification.NotificationID, err)
		}
		return nil, errors.E(errors.Internal, "failed to insert notification", err)
	}
	return notification, nil
}

// FindByID returns the notification with the given identity.
func (r *NotificationRepository) FindByID(ctx context.Context, id int64) (*models.Notification, error) {
	var notification models.Notification
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&notification)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.NotificationNotFoundErr(id)
		}
		return nil, errors.E(errors.Internal, "failed to fetch notification", err)
	}
	return &notification, nil
}

// FindAll returns every stored notification.
func (r *NotificationRepository) FindAll(ctx context.Context) ([]models.Notification, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.E(errors.Internal, "failed to list notifications", err)
	}

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, errors.E(errors.Internal, "failed to decode notifications", err)
	}
	return notifications, nil
}

// Update applies a sparse patch: only non-nil fields overwrite, nil means
// leave unchanged. Fails with NotFound when the identity does not exist.
func (r *NotificationRepository) Update(ctx context.Context, id int64, patch *models.NotificationPatch) (*models.Notification, error) {
	set := bson.M{}
	if patch.UserID != nil {
		set["user_id"] = *patch.UserID
	}
	if patch.Message != nil {
		set["message"] = *patch.Message
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.NotificationType != nil {
		set["notification_type"] = *patch.NotificationType
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.NotificationID != nil {
		set["notification_id"] = *patch.NotificationID
	}
	if patch.Recipient != nil {
		set["recipient"] = *patch.Recipient
	}
	if patch.Subject != nil {
		set["subject"] = *patch.Subject
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Notification
	err := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.NotificationNotFoundErr(id)
		}
		return nil, errors.E(errors.Internal, "failed to update notification", err)
	}
	return &updated, nil
}

// Delete removes the notification by identity. Deleting an id that does
// not exist is not an error.
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.collection().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.E(errors.Internal, "failed to delete notification", err)
	}
	return nil
}
