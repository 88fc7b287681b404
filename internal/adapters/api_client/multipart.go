package api_client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

type MultipartField struct {
	Name  string
	Value string
}

type MultipartFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartBody - тело multipart/form-data. Порядок полей сохраняется.
type MultipartBody struct {
	Fields []MultipartField
	Files  []MultipartFile
}

func (b *MultipartBody) Add(name, value string) {
	b.Fields = append(b.Fields, MultipartField{Name: name, Value: value})
}

// Encode возвращает тело и Content-Type с boundary.
func (b *MultipartBody) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range b.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	for _, f := range b.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Filename, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// propertyMultipart раскладывает вложенные поля в ключи со скобками:
// location[city], details[sqft], amenities[]; файлы уходят под ключом images.
func propertyMultipart(in domain.PropertyInput) *MultipartBody {
	b := &MultipartBody{}
	b.Add("title", in.Title)
	b.Add("description", in.Description)
	b.Add("type", string(in.Type))
	b.Add("price", strconv.FormatInt(in.Price, 10))
	b.Add("status", string(in.Status))

	b.Add("location[address]", in.Location.Address)
	b.Add("location[city]", in.Location.City)
	b.Add("location[state]", in.Location.State)
	b.Add("location[zipCode]", in.Location.ZipCode)
	b.Add("location[country]", in.Location.Country)

	b.Add("details[bedrooms]", strconv.Itoa(in.Details.Bedrooms))
	b.Add("details[bathrooms]", strconv.Itoa(in.Details.Bathrooms))
	b.Add("details[sqft]", strconv.Itoa(in.Details.Sqft))
	b.Add("details[yearBuilt]", strconv.Itoa(in.Details.YearBuilt))

	for _, a := range in.Amenities {
		b.Add("amenities[]", a)
	}
	for _, img := range in.Images {
		b.Files = append(b.Files, MultipartFile{
			Field:       "images",
			Filename:    img.Filename,
			ContentType: img.ContentType,
			Data:        img.Data,
		})
	}
	return b
}
