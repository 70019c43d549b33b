package discovery

// JSON Schemas for each payload. Every field the screens read is required.

const placeListSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "thumbnail"],
    "properties": {
      "name": {"type": "string"},
      "thumbnail": {"type": "string"}
    }
  }
}`

const destinationDetailsSchema = `{
  "type": "object",
  "required": ["description", "photos"],
  "properties": {
    "description": {"type": "string"},
    "photos": {"type": "array", "items": {"type": "string"}}
  }
}`

const restaurantDetailsSchema = `{
  "type": "object",
  "required": ["description", "popularDishes", "photos", "reviews"],
  "properties": {
    "description": {"type": "string"},
    "popularDishes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "price", "numPhotos", "photo"],
        "properties": {
          "name": {"type": "string"},
          "price": {"type": "string"},
          "numPhotos": {"type": "integer"},
          "photo": {"type": "string"}
        }
      }
    },
    "photos": {"type": "array", "items": {"type": "string"}},
    "reviews": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["user", "rating", "text"],
        "properties": {
          "user": {
            "type": "object",
            "required": ["id", "username", "firstName", "lastName", "profileImage"],
            "properties": {
              "id": {"type": "integer"},
              "username": {"type": "string"},
              "firstName": {"type": "string"},
              "lastName": {"type": "string"},
              "profileImage": {"type": "string"}
            }
          },
          "rating": {"type": "integer"},
          "text": {"type": "string"}
        }
      }
    }
  }
}`

const userDetailsSchema = `{
  "type": "object",
  "required": ["username", "firstName", "lastName", "profileImage", "followers", "following", "posts"],
  "properties": {
    "username": {"type": "string"},
    "firstName": {"type": "string"},
    "lastName": {"type": "string"},
    "profileImage": {"type": "string"},
    "followers": {"type": "integer"},
    "following": {"type": "integer"},
    "posts": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "imageUrl", "views", "hashtags"],
        "properties": {
          "title": {"type": "string"},
          "imageUrl": {"type": "string"},
          "views": {"type": "string"},
          "hashtags": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
