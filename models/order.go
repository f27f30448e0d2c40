package models

import (
	"context"
	"time"

	db "shopora-backend/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem snapshots name and unit price at checkout time so later product
// edits do not rewrite order history.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	OwnerID   primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	Name      string             `json:"name" bson:"name"`
	UnitPrice float64            `json:"unit_price" bson:"unit_price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	ImageURL  string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	ShippingAddress Address            `json:"shipping_address" bson:"shipping_address"`
	ItemsTotal      float64            `json:"items_total" bson:"items_total"`
	ShippingFee     float64            `json:"shipping_fee" bson:"shipping_fee"`
	Total           float64            `json:"total" bson:"total"`
	Status          string             `json:"status" bson:"status"`
	PaymentIntentID string             `json:"payment_intent_id,omitempty" bson:"payment_intent_id,omitempty"`
	TrackingNumber  string             `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`
	PaidAt          *time.Time         `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

func CreateOrder(order Order) (Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	_, err := db.OrderCollection.InsertOne(ctx, order)
	return order, err
}

func GetOrderByID(orderID primitive.ObjectID) (Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	return order, err
}

func GetOrdersByUser(userID primitive.ObjectID) ([]Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.OrderCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrdersContainingOwner returns orders with at least one line item owned
// by the given seller or vendor.
func GetOrdersContainingOwner(ownerID primitive.ObjectID) ([]Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.OrderCollection.Find(ctx, bson.M{
		"items": bson.M{"$elemMatch": bson.M{"owner_id": ownerID}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CompareAndSetOrderStatus moves the order from one status to another in a
// single conditional update, so concurrent writers cannot both claim the
// same transition. Returns mongo.ErrNoDocuments when the order is no longer
// in from. PaidAt is stamped when an order reaches "paid".
func CompareAndSetOrderStatus(ctx context.Context, orderID primitive.ObjectID, from, to string) error {
	set := bson.M{"status": to, "updated_at": time.Now()}
	if to == OrderStatusPaid {
		set["paid_at"] = time.Now()
	}
	result, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ContainsOwner reports whether any line item belongs to ownerID.
func (o *Order) ContainsOwner(ownerID primitive.ObjectID) bool {
	for _, item := range o.Items {
		if item.OwnerID == ownerID {
			return true
		}
	}
	return false
}
