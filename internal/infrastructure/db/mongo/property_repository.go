package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staynest/rental-platform/internal/core/domain"
)

const propertiesCollection = "properties"

type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection(propertiesCollection)}
}

type mongoOwner struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Role  string `bson:"role"`
}

type mongoProperty struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Price         float64            `bson:"price"`
	Location      string             `bson:"location"`
	Description   string             `bson:"description"`
	Images        []string           `bson:"images"`
	Amenities     []string           `bson:"amenities"`
	PropertyType  string             `bson:"property_type"`
	Bedrooms      int                `bson:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms"`
	Elevator      bool               `bson:"elevator"`
	SqFeet        float64            `bson:"sqfeet"`
	AvailableFrom *time.Time         `bson:"available_from,omitempty"`
	BookingStatus bool               `bson:"booking_status"`
	OwnerID       primitive.ObjectID `bson:"owner_id"`
	Owner         *mongoOwner        `bson:"owner,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (mp *mongoProperty) toDomain() *domain.Property {
	p := &domain.Property{
		ID:            mp.ID.Hex(),
		Title:         mp.Title,
		Price:         mp.Price,
		Location:      mp.Location,
		Description:   mp.Description,
		Images:        mp.Images,
		Amenities:     mp.Amenities,
		PropertyType:  domain.PropertyType(mp.PropertyType),
		Bedrooms:      mp.Bedrooms,
		Bathrooms:     mp.Bathrooms,
		Elevator:      mp.Elevator,
		SqFeet:        mp.SqFeet,
		AvailableFrom: mp.AvailableFrom,
		BookingStatus: mp.BookingStatus,
		OwnerID:       mp.OwnerID.Hex(),
		CreatedAt:     mp.CreatedAt,
		UpdatedAt:     mp.UpdatedAt,
	}
	if mp.Owner != nil {
		p.Owner = &domain.OwnerSummary{
			Name:  mp.Owner.Name,
			Email: mp.Owner.Email,
			Role:  mp.Owner.Role,
		}
	}
	return p
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	ownerOID, err := parseObjectID(p.OwnerID, "owner")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProperty{
		Title:         p.Title,
		Price:         p.Price,
		Location:      p.Location,
		Description:   p.Description,
		Images:        p.Images,
		Amenities:     p.Amenities,
		PropertyType:  string(p.PropertyType),
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Elevator:      p.Elevator,
		SqFeet:        p.SqFeet,
		AvailableFrom: p.AvailableFrom,
		BookingStatus: p.BookingStatus,
		OwnerID:       ownerOID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := parseObjectID(id, "property")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProperty
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PropertyRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Property, error) {
	oid, err := parseObjectID(id, "property")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	var mp mongoProperty
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("update property: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "property")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// Search runs the filter through an aggregation pipeline that joins the
// denormalized owner summary at read time. Only name, email and role are
// projected from the owner document.
func (r *PropertyRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildSearchFilter(filter)}},
		// Deterministic ordering keeps repeated queries stable.
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "owner_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "name", Value: 1},
					{Key: "email", Value: 1},
					{Key: "role", Value: 1},
				}}},
			}},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*domain.Property
	for cursor.Next(ctx) {
		var mp mongoProperty
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		results = append(results, mp.toDomain())
	}
	return results, cursor.Err()
}

func (r *PropertyRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	oid, err := parseObjectID(ownerID, "owner")
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"owner_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete properties by owner: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes backing the common query dimensions.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "amenities", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// buildSearchFilter translates the domain filter into a Mongo match stage.
// Semantics: substring text match (case-insensitive, OR across title,
// location, description), inclusive price bounds, amenity superset via $all.
func buildSearchFilter(f domain.SearchFilter) bson.M {
	match := bson.M{}

	if f.Text != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Text), Options: "i"}
		match["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"location": pattern},
			bson.M{"description": pattern},
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		match["price"] = price
	}

	if len(f.Amenities) > 0 {
		match["amenities"] = bson.M{"$all": f.Amenities}
	}

	return match
}
