package handler

import (
	"strings"
	"time"

	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
)

const dateLayout = "2006-01-02"

// --- Request → Service input ---

func toCreateInput(req createPropertyRequest, imageURIs []string) (ports.CreatePropertyInput, error) {
	in := ports.CreatePropertyInput{
		Title:        req.Title,
		Price:        req.Price,
		Location:     req.Location,
		Description:  req.Description,
		Images:       imageURIs,
		Amenities:    splitAmenities(req.Amenities),
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Elevator:     req.Elevator,
		SqFeet:       req.SqFeet,
	}

	if req.AvailableFrom != "" {
		t, err := time.Parse(dateLayout, req.AvailableFrom)
		if err != nil {
			return ports.CreatePropertyInput{}, domain.ErrInvalidInput
		}
		in.AvailableFrom = &t
	}

	return in, nil
}

func toUpdateInput(req updatePropertyRequest) (ports.UpdatePropertyInput, error) {
	in := ports.UpdatePropertyInput{
		Title:         req.Title,
		Price:         req.Price,
		Location:      req.Location,
		Description:   req.Description,
		Images:        req.Images,
		PropertyType:  req.PropertyType,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Elevator:      req.Elevator,
		SqFeet:        req.SqFeet,
		BookingStatus: req.BookingStatus,
	}
	if req.Amenities != nil {
		in.Amenities = splitAmenities(req.Amenities)
	}

	if req.AvailableFrom != nil {
		t, err := time.Parse(dateLayout, *req.AvailableFrom)
		if err != nil {
			return ports.UpdatePropertyInput{}, domain.ErrInvalidInput
		}
		in.AvailableFrom = &t
	}

	return in, nil
}

// splitAmenities accepts both repeated values and a single comma-separated
// value, normalizing to a trimmed list.
func splitAmenities(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// --- Domain → HTTP response ---

func toPropertyResponse(p *domain.Property) propertyResponse {
	resp := propertyResponse{
		ID:            p.ID,
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
		OwnerID:       p.OwnerID,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
	if p.Owner != nil {
		resp.Owner = &ownerResponse{
			Name:  p.Owner.Name,
			Email: p.Owner.Email,
			Role:  p.Owner.Role,
		}
	}
	return resp
}

func toListResponse(items []*domain.Property) listPropertiesResponse {
	data := make([]propertyResponse, len(items))
	for i, p := range items {
		data[i] = toPropertyResponse(p)
	}
	return listPropertiesResponse{
		Success: true,
		Total:   len(data),
		Data:    data,
	}
}
