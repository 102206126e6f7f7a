package azure

const DefaultAPIVersion = "2023-05-15"
