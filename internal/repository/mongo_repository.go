package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpdesk-bot/ticket-api/internal/domain"
)

// mongoRepository is the document-database variant of the store. Ids are
// database-assigned ObjectIDs and identity lookups use case-insensitive
// anchored regexes, mirroring how the hosted deployment queries the
// collection.
type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository instantiates the mongo-backed store.
func NewMongoRepository(collection *mongo.Collection) TicketRepository {
	return &mongoRepository{collection: collection}
}

type mongoTicket struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	Email              string             `bson:"email"`
	Phone              string             `bson:"phone"`
	Address            string             `bson:"address"`
	Issue              string             `bson:"issue"`
	Price              int                `bson:"price"`
	ConfirmationNumber int                `bson:"confirmation_number"`
	CreatedAt          time.Time          `bson:"created_at"`
}

func (d mongoTicket) toDomain() domain.Ticket {
	return domain.Ticket{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Email:              d.Email,
		Phone:              d.Phone,
		Address:            d.Address,
		Issue:              d.Issue,
		Price:              d.Price,
		ConfirmationNumber: d.ConfirmationNumber,
		CreatedAt:          d.CreatedAt,
	}
}

// exactFold builds an anchored case-insensitive match for the given value.
func exactFold(value string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(value)) + "$",
		Options: "i",
	}
}

func (r *mongoRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	doc := mongoTicket{
		Name:               ticket.Name,
		Email:              ticket.Email,
		Phone:              ticket.Phone,
		Address:            ticket.Address,
		Issue:              ticket.Issue,
		Price:              ticket.Price,
		ConfirmationNumber: ticket.ConfirmationNumber,
		CreatedAt:          time.Now().UTC(),
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected inserted id type")
	}
	ticket.ID = oid.Hex()
	ticket.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []mongoTicket
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0, len(docs))
	for _, doc := range docs {
		tickets = append(tickets, doc.toDomain())
	}
	return tickets, nil
}

func (r *mongoRepository) Find(ctx context.Context, name, email string, confirmationNumber int) (*domain.Ticket, error) {
	filter := bson.M{
		"name":                exactFold(name),
		"email":               exactFold(email),
		"confirmation_number": confirmationNumber,
	}
	var doc mongoTicket
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ticket := doc.toDomain()
	return &ticket, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc mongoTicket
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ticket := doc.toDomain()
	return &ticket, nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, update domain.TicketUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	set := bson.M{}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Issue != nil {
		set["issue"] = *update.Issue
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if len(set) == 0 {
		return ErrUpdateFailed
	}

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrUpdateFailed
	}
	return nil
}

func (r *mongoRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}
