package help

const ColdstartYAML = `# recipe-web-parser Quick Start

outcomes:
  integrated: "schema.org Recipe found and normalized"
  needs_review: "page declares a Recipe but its JSON-LD is broken, stored as a link"
  link_only: "no Recipe metadata, stored as a link with the page title"

commands:
  basic_import: |
    recipe-web-parser import --urls "https://example.com/apple-pie"

  several_urls: |
    recipe-web-parser import --urls "url1,url2,url3" --workers 8

  full_records_as_yaml: |
    recipe-web-parser import --urls "https://example.com/apple-pie" --full --format yaml

  bypass_page_cache: |
    recipe-web-parser import --urls "https://example.com/apple-pie" --force-fetch --replace

  retry_broken_pages: |
    recipe-web-parser import --retry-review --notify

  list_recipes: |
    recipe-web-parser db recipes --limit 20

  show_recipe: |
    recipe-web-parser db show 5
    recipe-web-parser db show "https://example.com/apple-pie" --format yaml

  review_queue: |
    recipe-web-parser db review

  import_log: |
    recipe-web-parser db attempts "https://example.com/apple-pie"

config_file:
  format: "json5, passed with --config; <name>.local.json5 next to it overrides it"
  example: |
    {
      workers: 4,
      database: "recipes.db",
      cache: { dir: "/tmp/recipe-web-parser/pages", ttl: "1h" },
      http: { timeout: "30s", retry_count: 1 },
      smtp: { enabled: true, server: "smtp.example.com", port: 587,
              email_address: "bot@example.com", password: "...",
              recipients: ["cook@example.com"] },
    }

invariants:
  - "One recipe per URL; re-importing fails with error_type duplicate unless --replace"
  - "Pages are stored even when blocked (403): the title is blanked, the URL kept"
  - "Every import, failed or not, is logged in import_attempts"
  - "--retry-review re-imports every needs_review recipe and replaces it"

error_behavior:
  - "Malformed URLs: reported as invalid_url, the rest still run"
  - "Network errors: fetch_error, nothing stored"
  - "Exit codes: 0=success, 1=partial failure, 2=complete failure"
`
