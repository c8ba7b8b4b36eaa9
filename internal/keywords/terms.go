package keywords

// Built-in reference terms. Matching is case and hyphenation insensitive, so
// the spelling here follows clinical convention rather than match form.

var (
	medicationsTerms = []string{
		"nitroglycerin", "aspirin", "morphine", "beta-blockers", "diuretics",
		"antihypertensives", "anticoagulants", "bronchodilators", "insulin", "oxygen therapy",
		"iv fluids", "vasopressors", "corticosteroids", "thrombolytics", "ACE inhibitors",
		"statins", "antihistamines", "NSAIDs", "antiarrhythmics", "anticonvulsants", "sedatives",
		"antibiotics", "antipyretics", "muscle relaxants", "antipsychotics", "antidepressants",
		"antiemetics", "proton pump inhibitors", "H2 blockers", "DPP-4 inhibitors",
		"SGLT2 inhibitors", "GLP-1 receptor agonists", "anticholinergics", "immunosuppressants",
		"methotrexate", "lithium", "benzodiazepines", "opioid antagonists",
		"antihyperlipidemics", "antifungals", "antivirals", "monoclonal antibodies",
		"immunoglobulins", "calcium channel blockers", "digoxin", "heparin", "enoxaparin",
		"metformin", "warfarin", "gabapentin", "pregabalin", "atropine", "levothyroxine",
		"amiodarone", "erythropoietin", "diltiazem", "fentanyl", "oxycodone", "hydrocodone",
		"tramadol", "albuterol", "salbutamol", "ipratropium", "clopidogrel", "tPA", "methadone",
		"diphenhydramine", "ketorolac", "fluconazole", "rifampin", "clindamycin", "azithromycin",
		"vancomycin", "adenosine", "dobutamine", "dopamine", "milrinone", "spironolactone",
		"labetalol", "ranitidine", "ondansetron", "scopolamine", "sumatriptan", "haloperidol",
		"chlorpromazine", "baclofen", "lidocaine", "dexamethasone", "prednisone", "cyclosporine",
		"tacrolimus", "phenytoin", "carbamazepine", "allopurinol", "colchicine",
		"bisphosphonates", "sildenafil", "tadalafil", "niacin", "dipyridamole", "methimazole",
		"propylthiouracil", "epoetin alfa",
	}

	proceduresTerms = []string{
		"assessment", "monitoring", "monitored", "ecg", "vital signs", "oxygen therapy",
		"positioning", "nebulization", "administered", "blood glucose", "blood pressure",
		"temperature", "pulse", "catheterization", "wound care", "intubation", "defibrillation",
		"telemetry", "respiratory rate monitoring", "IV insertion", "neurological assessment",
		"dialysis", "transfusion", "central line placement", "lumbar puncture",
		"mechanical ventilation", "endoscopy", "biopsy", "echocardiography", "CT scan",
		"MRI scan", "ultrasound", "ABG analysis", "bronchoscopy", "thoracentesis", "pleural tap",
		"cardiac stress test", "electroencephalogram", "blood culture", "urinalysis",
		"sputum analysis", "wound culture", "nasogastric tube insertion", "pacemaker placement",
		"cardioversion", "chest tube insertion", "tracheostomy care", "gastric lavage",
		"hemodynamic monitoring", "peritoneal dialysis", "indwelling catheter care",
		"skin integrity assessment", "glucose tolerance test", "lactate clearance test",
		"fluid balance monitoring", "GCS assessment", "Doppler ultrasound",
		"pleural effusion drainage", "sedation protocol", "prone positioning",
		"infection control measures", "sepsis bundle", "hand hygiene compliance",
		"aspiration precautions", "stroke protocol implementation",
		"blood transfusion reaction monitoring", "medication reconciliation",
		"post-operative care", "fall risk assessment", "wound irrigation", "debridement",
		"splint application", "suture removal", "rapid sequence intubation",
		"capillary refill time assessment", "neonatal resuscitation protocol",
		"fetal heart monitoring", "APGAR scoring", "cord blood collection",
		"Kangaroo mother care", "pressure ulcer staging", "nasopharyngeal suctioning",
		"enteral feeding tube placement", "oral care protocol", "seclusion/restraint assessment",
		"psychiatric risk assessment", "de-escalation techniques", "hypothermia protocol",
		"insulin administration protocol", "thyroid function testing",
		"contrast dye allergy screening", "ventilator weaning protocol",
		"hearing/vision screening", "stool sample analysis", "newborn metabolic screening",
	}

	painManagementTerms = []string{
		"pain assessment", "pain rating", "pain score", "pain level", "morphine",
		"pain management", "pain control", "pain relief", "comfort measures", "pain medication",
		"analgesia", "opioid therapy", "non-opioid pain relief", "TENS", "heat therapy",
		"cold therapy", "acupuncture", "guided imagery", "nerve blocks",
		"cognitive behavioral therapy", "NSAID therapy", "epidural injection", "massage therapy",
		"aromatherapy", "chiropractic treatment", "relaxation techniques", "hypnosis",
		"music therapy", "mindfulness meditation", "biofeedback", "stretching exercises",
		"aquatic therapy", "yoga for pain relief", "breathing exercises", "herbal pain remedies",
		"distraction techniques", "posture correction therapy", "physical therapy",
		"splinting for pain reduction", "hydrotherapy", "lidocaine patches",
		"patient-controlled analgesia", "trigger point therapy", "deep tissue massage",
		"virtual reality pain therapy", "meditation-based stress relief",
		"progressive muscle relaxation", "transdermal fentanyl patches",
		"opioids rotation therapy", "stress-induced pain relief", "guided relaxation",
		"electrical stimulation therapy", "serotonin modulation", "dopaminergic pain relief",
		"ketamine infusion therapy", "opioid sparing strategies", "mirror therapy",
		"thoracic epidural analgesia", "radiofrequency ablation", "functional rehabilitation",
		"palliative pain care", "osteopathic manipulative treatment",
		"psychological pain therapy", "sleep hygiene education",
		"serotonin-norepinephrine reuptake inhibitors",
	}

	diagnosesTerms = []string{
		"hypoglycemia", "arrhythmia", "pneumonia", "asthma exacerbation",
		"congestive heart failure", "hypertensive crisis", "myocardial infarction",
		"dehydration", "hypothyroid crisis", "unstable angina", "sepsis", "stroke",
		"deep vein thrombosis", "pulmonary embolism", "renal failure", "COPD", "anemia",
		"hyperkalemia", "diabetic ketoacidosis", "pancreatitis", "meningitis", "encephalitis",
		"epilepsy", "tuberculosis", "hepatitis", "cirrhosis", "ulcerative colitis",
		"Crohn's disease", "multiple sclerosis", "lupus", "rheumatoid arthritis", "gout",
		"osteoporosis", "fibromyalgia", "Lyme disease", "cellulitis", "Bell's palsy",
		"Guillain-Barré syndrome", "tetanus", "endocarditis", "pericarditis", "myocarditis",
		"appendicitis", "gallstones", "diverticulitis", "liver failure", "hemophilia",
		"ischemic stroke", "hemorrhagic stroke", "shock", "metabolic acidosis",
		"hyperthyroidism", "Addison's disease", "Cushing's syndrome", "bipolar disorder",
		"schizophrenia", "major depressive disorder", "borderline personality disorder",
		"alcohol withdrawal syndrome",
	}
)
